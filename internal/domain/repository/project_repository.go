package repository

import (
	"context"

	"seo-flow-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目，不存在时返回 nil
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// ListByUser 获取用户的项目列表
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*entity.Project, error)

	// UpdateFolder 更新单个文件夹字段
	UpdateFolder(ctx context.Context, id string, field entity.FolderField, content string) error
}
