package postgres

import (
	"context"
	"fmt"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
)

// AuditRepository 审计记录仓储实现
type AuditRepository struct {
	client *Client
}

// NewAuditRepository 创建审计记录仓储
func NewAuditRepository(client *Client) *AuditRepository {
	return &AuditRepository{client: client}
}

// Create 写入审计记录
func (r *AuditRepository) Create(ctx context.Context, audit *entity.Audit) error {
	ctx, span := tracer.Start(ctx, "postgres.AuditRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(audit).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create audit: %w", err)
	}
	return nil
}

// ListByProject 获取项目下的审计记录
func (r *AuditRepository) ListByProject(ctx context.Context, projectID string, opts repository.ListOptions) ([]*entity.Audit, error) {
	ctx, span := tracer.Start(ctx, "postgres.AuditRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var audits []*entity.Audit
	if err := newestFirst(db.Where("project_id = ?", projectID), opts.Limit).Find(&audits).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	return audits, nil
}

// ContentBriefRepository 内容简报仓储实现
type ContentBriefRepository struct {
	client *Client
}

// NewContentBriefRepository 创建内容简报仓储
func NewContentBriefRepository(client *Client) *ContentBriefRepository {
	return &ContentBriefRepository{client: client}
}

func (r *ContentBriefRepository) Create(ctx context.Context, brief *entity.ContentBrief) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentBriefRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(brief).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create content brief: %w", err)
	}
	return nil
}

func (r *ContentBriefRepository) ListByProject(ctx context.Context, projectID string, opts repository.ListOptions) ([]*entity.ContentBrief, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentBriefRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var briefs []*entity.ContentBrief
	if err := newestFirst(db.Where("project_id = ?", projectID), opts.Limit).Find(&briefs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list content briefs: %w", err)
	}
	return briefs, nil
}

// SerpSimulationRepository SERP 模拟仓储实现
type SerpSimulationRepository struct {
	client *Client
}

// NewSerpSimulationRepository 创建 SERP 模拟仓储
func NewSerpSimulationRepository(client *Client) *SerpSimulationRepository {
	return &SerpSimulationRepository{client: client}
}

func (r *SerpSimulationRepository) Create(ctx context.Context, sim *entity.SerpSimulation) error {
	ctx, span := tracer.Start(ctx, "postgres.SerpSimulationRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(sim).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create serp simulation: %w", err)
	}
	return nil
}

func (r *SerpSimulationRepository) ListByProject(ctx context.Context, projectID string, opts repository.ListOptions) ([]*entity.SerpSimulation, error) {
	ctx, span := tracer.Start(ctx, "postgres.SerpSimulationRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sims []*entity.SerpSimulation
	if err := newestFirst(db.Where("project_id = ?", projectID), opts.Limit).Find(&sims).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list serp simulations: %w", err)
	}
	return sims, nil
}
