package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"seo-flow-api/internal/domain/repository"
)

// DashboardRepository 仪表盘查询实现
type DashboardRepository struct {
	client *Client
}

// NewDashboardRepository 创建仪表盘查询仓储
func NewDashboardRepository(client *Client) *DashboardRepository {
	return &DashboardRepository{client: client}
}

// recentJoined 以 alias 为主表关联项目名称，按用户过滤并倒序截断
func recentJoined(db *gorm.DB, table, alias, columns, userID string, limit int) *gorm.DB {
	q := db.Table(table+" AS "+alias).
		Select(columns+", p.name AS project_name").
		Joins("JOIN projects p ON p.id = "+alias+".project_id").
		Where(alias+".user_id = ?", userID).
		Order(alias + ".created_at DESC").
		Order(alias + ".id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func (r *DashboardRepository) RecentBriefs(ctx context.Context, userID string, limit int) ([]repository.BriefSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.DashboardRepository.RecentBriefs")
	defer span.End()

	var out []repository.BriefSummary
	q := recentJoined(getDB(ctx, r.client.db), "content_briefs", "b",
		"b.id, b.project_id, b.target_keyword, b.created_at", userID, limit)
	if err := q.Scan(&out).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent briefs: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) RecentAudits(ctx context.Context, userID string, limit int) ([]repository.AuditSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.DashboardRepository.RecentAudits")
	defer span.End()

	var out []repository.AuditSummary
	q := recentJoined(getDB(ctx, r.client.db), "audits", "a",
		"a.id, a.project_id, a.kind, a.status, a.overall_health_score, a.created_at", userID, limit)
	if err := q.Scan(&out).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent audits: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) RecentSimulations(ctx context.Context, userID string, limit int) ([]repository.SimulationSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.DashboardRepository.RecentSimulations")
	defer span.End()

	var out []repository.SimulationSummary
	q := recentJoined(getDB(ctx, r.client.db), "serp_simulations", "s",
		"s.id, s.project_id, s.target_keyword, s.created_at", userID, limit)
	if err := q.Scan(&out).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent simulations: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) RecentProspects(ctx context.Context, userID string, limit int) ([]repository.ProspectSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.DashboardRepository.RecentProspects")
	defer span.End()

	var out []repository.ProspectSummary
	q := recentJoined(getDB(ctx, r.client.db), "outreach_prospects", "o",
		"o.id, o.project_id, o.name, o.website, o.status, o.created_at", userID, limit)
	if err := q.Scan(&out).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent prospects: %w", err)
	}
	return out, nil
}
