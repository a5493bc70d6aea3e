package postgres

import (
	"context"
	"fmt"
)

// UserContext 用户上下文管理（用于 RLS）
// set_config 的 is_local=TRUE 只在当前事务内生效，需在事务中调用
type UserContext struct {
	client *Client
}

// NewUserContext 创建用户上下文管理器
func NewUserContext(client *Client) *UserContext {
	return &UserContext{client: client}
}

// SetUser 设置当前用户上下文
func (uc *UserContext) SetUser(ctx context.Context, userID string) error {
	db := getDB(ctx, uc.client.db)
	err := db.Exec("SELECT set_config('app.current_user_id', ?, TRUE)", userID).Error
	if err != nil {
		return fmt.Errorf("failed to set user context: %w", err)
	}
	return nil
}
