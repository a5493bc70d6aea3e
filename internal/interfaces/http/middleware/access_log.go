// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"
	"time"

	"seo-flow-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog 请求访问日志
// 请求体可能包含草稿全文，只记录元信息
func AccessLog(skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range skipPaths {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "api request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		)
	}
}
