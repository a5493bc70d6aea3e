package service

import "context"

// LLMUsageInput 表示一次 LLM 调用的可观测数据。
// 该结构位于 domain/service，作为跨层契约，避免基础设施层依赖应用层实现。
type LLMUsageInput struct {
	UserID string

	Workflow string
	Provider string
	Model    string

	PromptTokens     int
	CompletionTokens int
	DurationMs       int
}

// LLMUsageRecorder 负责记录 LLM 使用量流水。
// 实现应为 best-effort，不阻断报告流程。
type LLMUsageRecorder interface {
	Record(ctx context.Context, in LLMUsageInput) error
}
