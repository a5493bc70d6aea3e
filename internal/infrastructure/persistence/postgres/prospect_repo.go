package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
)

// ProspectRepository 外链联系对象仓储实现
type ProspectRepository struct {
	client *Client
}

// NewProspectRepository 创建联系对象仓储
func NewProspectRepository(client *Client) *ProspectRepository {
	return &ProspectRepository{client: client}
}

func (r *ProspectRepository) Create(ctx context.Context, prospect *entity.OutreachProspect) error {
	ctx, span := tracer.Start(ctx, "postgres.ProspectRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(prospect).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create prospect: %w", err)
	}
	return nil
}

func (r *ProspectRepository) GetByID(ctx context.Context, id string) (*entity.OutreachProspect, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProspectRepository.GetByID")
	defer span.End()

	var prospect entity.OutreachProspect
	if err := getDB(ctx, r.client.db).First(&prospect, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get prospect: %w", err)
	}
	return &prospect, nil
}

func (r *ProspectRepository) ListByProject(ctx context.Context, projectID string, opts repository.ListOptions) ([]*entity.OutreachProspect, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProspectRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var prospects []*entity.OutreachProspect
	if err := newestFirst(db.Where("project_id = ?", projectID), opts.Limit).Find(&prospects).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list prospects: %w", err)
	}
	return prospects, nil
}

// UpdateStatus 更新状态字段
func (r *ProspectRepository) UpdateStatus(ctx context.Context, id string, status entity.ProspectStatus, lastContacted *time.Time) error {
	ctx, span := tracer.Start(ctx, "postgres.ProspectRepository.UpdateStatus")
	defer span.End()

	updates := map[string]any{"status": status}
	if lastContacted != nil {
		updates["last_contacted"] = *lastContacted
	}

	result := getDB(ctx, r.client.db).Model(&entity.OutreachProspect{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update prospect status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update prospect status: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
