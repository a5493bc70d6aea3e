package repository

import (
	"context"

	"seo-flow-api/internal/domain/entity"
)

// AuditRepository 审计记录仓储接口
type AuditRepository interface {
	Create(ctx context.Context, audit *entity.Audit) error
	ListByProject(ctx context.Context, projectID string, opts ListOptions) ([]*entity.Audit, error)
}

// ContentBriefRepository 内容简报仓储接口
type ContentBriefRepository interface {
	Create(ctx context.Context, brief *entity.ContentBrief) error
	ListByProject(ctx context.Context, projectID string, opts ListOptions) ([]*entity.ContentBrief, error)
}

// SerpSimulationRepository SERP 模拟仓储接口
type SerpSimulationRepository interface {
	Create(ctx context.Context, sim *entity.SerpSimulation) error
	ListByProject(ctx context.Context, projectID string, opts ListOptions) ([]*entity.SerpSimulation, error)
}
