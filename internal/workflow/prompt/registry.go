// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptScriptPackageV1 PromptID = "script_package_v1"
)

// promptFiles 模板文件位置，System 为空表示只有一条用户消息
type promptFiles struct {
	System string
	User   string
}

var promptCatalog = map[PromptID]promptFiles{
	PromptScriptPackageV1: {User: "templates/script_package_v1.user.txt"},
}

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

// ChatTemplate 返回已编译的 FString 模板，首次访问时从 embed.FS 读取
func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	files, ok := promptCatalog[id]
	if !ok {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}

	msgs := make([]schema.MessagesTemplate, 0, 2)
	if files.System != "" {
		system, err := readEmbeddedText(files.System)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, schema.SystemMessage(system))
	}
	user, err := readEmbeddedText(files.User)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, schema.UserMessage(user))

	tpl := einoprompt.FromMessages(schema.FString, msgs...)
	r.cache[id] = tpl
	return tpl, nil
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template %s: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}
