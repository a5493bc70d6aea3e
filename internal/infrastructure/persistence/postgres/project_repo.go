// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
)

// ProjectRepository 项目仓储实现
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository 创建项目仓储
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(project).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var project entity.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// ListByUser 获取用户的项目列表
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var projects []*entity.Project
	if err := newestFirst(db.Where("user_id = ?", userID), opts.Limit).Find(&projects).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateFolder 更新单个文件夹字段
func (r *ProjectRepository) UpdateFolder(ctx context.Context, id string, field entity.FolderField, content string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.UpdateFolder")
	defer span.End()

	if !field.IsValid() {
		return fmt.Errorf("unknown folder field %q", field)
	}

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.Project{}).Where("id = ?", id).Update(string(field), content)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update project folder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update project folder: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// newestFirst 按创建时间倒序，limit 大于 0 时截断
func newestFirst(db *gorm.DB, limit int) *gorm.DB {
	db = db.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db
}
