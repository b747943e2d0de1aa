package llm

import (
	"time"

	"yt-script-ai-api/pkg/metrics"
)

// observeCall 记录不经过 Eino 回调的提供商调用
func observeCall(provider, model, status string, d time.Duration) {
	metrics.LLMCallTotal.WithLabelValues(provider, model, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(provider, model).Observe(d.Seconds())
}

func observeTokens(provider, model string, prompt, completion int) {
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "prompt").Add(float64(prompt))
	metrics.LLMTokensUsed.WithLabelValues(provider, model, "completion").Add(float64(completion))
}
