package repository

import (
	"context"
	"time"

	"seo-flow-api/internal/domain/entity"
)

// ProspectRepository 外链联系对象仓储接口
type ProspectRepository interface {
	// Create 创建联系对象
	Create(ctx context.Context, prospect *entity.OutreachProspect) error

	// GetByID 根据 ID 获取联系对象，不存在时返回 nil
	GetByID(ctx context.Context, id string) (*entity.OutreachProspect, error)

	// ListByProject 获取项目下的联系对象
	ListByProject(ctx context.Context, projectID string, opts ListOptions) ([]*entity.OutreachProspect, error)

	// UpdateStatus 更新状态，lastContacted 非空时一并写入
	UpdateStatus(ctx context.Context, id string, status entity.ProspectStatus, lastContacted *time.Time) error
}
