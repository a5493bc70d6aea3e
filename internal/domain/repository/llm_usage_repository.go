package repository

import (
	"context"

	"seo-flow-api/internal/domain/entity"
)

// LLMUsageEventRepository LLM 用量流水仓储接口
type LLMUsageEventRepository interface {
	Create(ctx context.Context, event *entity.LLMUsageEvent) error
}
