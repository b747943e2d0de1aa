package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor(t *testing.T) {
	for _, words := range []int{3000, 4500, 6000, 8000} {
		b, ok := BucketFor(words)
		assert.True(t, ok)
		assert.Equal(t, words, b.TargetWords)
	}

	b, ok := BucketFor(5000)
	assert.False(t, ok)
	assert.Equal(t, 4500, b.TargetWords)
	assert.Equal(t, "5-6 partes", b.PartGuidance)
}

func TestFindVideoLength(t *testing.T) {
	opt, ok := FindVideoLength("6000")
	require.True(t, ok)
	assert.Equal(t, "~6.000 palavras (20-30 min)", opt.Label)

	opt, ok = FindVideoLength("~8.000 palavras (30-45 min)")
	require.True(t, ok)
	assert.Equal(t, "8000", opt.Value)

	_, ok = FindVideoLength("9000")
	assert.False(t, ok)

	assert.Equal(t, "3000", DefaultVideoLength().Value)
}

func TestNewScriptRequest(t *testing.T) {
	req, err := NewScriptRequest("Como fazer café", "", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "~3.000 palavras (10-15 min)", req.VideoLength)
	assert.Equal(t, DefaultLanguage, req.Language)

	req, err = NewScriptRequest("Como fazer café", "Canal", "", "", "4500", "Inglês_USA")
	require.NoError(t, err)
	assert.Equal(t, "~4.500 palavras (15-20 min)", req.VideoLength)

	_, err = NewScriptRequest("   ", "", "", "", "", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
	assert.Equal(t, MsgTitleRequired, verr.Message)

	_, err = NewScriptRequest("ok", "", "", "", "1234", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "video_length", verr.Field)

	_, err = NewScriptRequest("ok", "", "", "", "", "Klingon")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "language", verr.Field)
}

func TestGenerationFailureMessage(t *testing.T) {
	assert.Equal(t, "Falha ao gerar o roteiro: boom", GenerationFailureMessage("boom"))
	assert.Equal(t, MsgUnknownError, GenerationFailureMessage(""))
}

func TestGeneratedScriptWordCount(t *testing.T) {
	s := &GeneratedScript{
		Hook:         "um dois",
		Introduction: "três",
		MainContent:  []MainContentPart{{Part: 1, Content: "quatro cinco seis"}},
		Conclusion:   "sete",
	}
	assert.Equal(t, 7, s.WordCount())
}

func TestSessionTransitions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSession("s1", now)
	assert.Equal(t, SessionStatusIdle, s.Status)

	// 非提交中状态不能直接完成
	assert.ErrorIs(t, s.Succeed(&GeneratedScript{}, now), ErrInvalidTransition)
	assert.ErrorIs(t, s.Fail("network", "x", now), ErrInvalidTransition)

	req := ScriptRequest{Title: "t", Language: DefaultLanguage}
	require.NoError(t, s.BeginSubmit(req, now))
	assert.True(t, s.IsSubmitting())
	assert.ErrorIs(t, s.BeginSubmit(req, now), ErrInvalidTransition)

	require.NoError(t, s.Fail("network", "boom", now))
	assert.Equal(t, SessionStatusFailed, s.Status)
	assert.Nil(t, s.Result)
	require.NotNil(t, s.Error)

	// 重新提交会清空上次的错误
	require.NoError(t, s.BeginSubmit(req, now))
	assert.Nil(t, s.Error)
	assert.Nil(t, s.Result)
	assert.Equal(t, 2, s.Attempts)

	require.NoError(t, s.Succeed(&GeneratedScript{Hook: "h"}, now))
	assert.Equal(t, SessionStatusSucceeded, s.Status)
	assert.Nil(t, s.Error)
	assert.Equal(t, "h", s.Result.Hook)

	require.NoError(t, s.BeginSubmit(req, now))
	assert.Nil(t, s.Result)
}
