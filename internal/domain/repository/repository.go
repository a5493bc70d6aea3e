// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserContextManager 用户上下文管理接口（用于 PostgreSQL RLS）
type UserContextManager interface {
	// SetUser 在当前事务中设置用户上下文
	SetUser(ctx context.Context, userID string) error
}

// ListOptions 列表查询选项，结果按创建时间倒序
type ListOptions struct {
	// Limit 返回条数上限，0 表示不限制
	Limit int
}

// NewListOptions 创建列表查询选项
func NewListOptions(limit int) ListOptions {
	if limit < 0 {
		limit = 0
	}
	return ListOptions{Limit: limit}
}
