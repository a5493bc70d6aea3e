package model

import "time"

// LLMUsageMeta 一次生成调用的模型与用量信息
type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	GeneratedAt      time.Time
}
