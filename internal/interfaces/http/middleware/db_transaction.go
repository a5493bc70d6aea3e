// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/pkg/logger"
)

type rollbackOnlyError struct {
	status int
}

func (e rollbackOnlyError) Error() string {
	return fmt.Sprintf("rollback only: status=%d", e.status)
}

// DBTransaction 为请求包裹一个数据库事务，并在事务内设置当前用户，使行级安全策略生效。
//
// PostgreSQL 的 set_config(..., is_local=TRUE) 只在当前事务内有效，因此必须与事务绑定。
// 只挂在短小的 CRUD 路由上：报告生成会等待模型数秒到数十秒，
// 仪表盘会并发读取，这两类请求在处理器内部按需开启短事务。
//
// 状态码 < 400 且无 Gin 错误时提交，否则回滚。
func DBTransaction(tx repository.Transactor, userCtx repository.UserContextManager) gin.HandlerFunc {
	if tx == nil || userCtx == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := GetUserID(ctx)

		err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if userID != "" {
				if err := userCtx.SetUser(txCtx, userID); err != nil {
					return err
				}
			}

			c.Request = c.Request.WithContext(txCtx)
			c.Next()

			status := c.Writer.Status()
			if status >= http.StatusBadRequest || len(c.Errors) > 0 {
				return rollbackOnlyError{status: status}
			}
			return nil
		})
		if err == nil {
			return
		}

		// 处理器主动回滚时响应已经写出
		var rbErr rollbackOnlyError
		if errors.As(err, &rbErr) {
			return
		}

		logger.Error(ctx, "db transaction failed", err)
		if !c.Writer.Written() && c.Writer.Status() < http.StatusBadRequest {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":     http.StatusInternalServerError,
				"message":  "internal server error",
				"trace_id": c.GetString("trace_id"),
			})
		}
	}
}
