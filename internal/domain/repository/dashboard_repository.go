package repository

import (
	"context"
	"time"

	"seo-flow-api/internal/domain/entity"
)

// BriefSummary 仪表盘中的内容简报条目
type BriefSummary struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	TargetKeyword string    `json:"target_keyword"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuditSummary 仪表盘中的审计条目
type AuditSummary struct {
	ID                 string           `json:"id"`
	ProjectID          string           `json:"project_id"`
	ProjectName        string           `json:"project_name"`
	Kind               entity.AuditKind `json:"kind"`
	Status             string           `json:"status"`
	OverallHealthScore *int             `json:"overall_health_score,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// SimulationSummary 仪表盘中的 SERP 模拟条目
type SimulationSummary struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	TargetKeyword string    `json:"target_keyword"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProspectSummary 仪表盘中的联系对象条目
type ProspectSummary struct {
	ID          string                `json:"id"`
	ProjectID   string                `json:"project_id"`
	ProjectName string                `json:"project_name"`
	Name        string                `json:"name"`
	Website     string                `json:"website"`
	Status      entity.ProspectStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// DashboardRepository 仪表盘只读查询，均按用户过滤并按创建时间倒序
type DashboardRepository interface {
	RecentBriefs(ctx context.Context, userID string, limit int) ([]BriefSummary, error)
	RecentAudits(ctx context.Context, userID string, limit int) ([]AuditSummary, error)
	RecentSimulations(ctx context.Context, userID string, limit int) ([]SimulationSummary, error)
	RecentProspects(ctx context.Context, userID string, limit int) ([]ProspectSummary, error)
}
