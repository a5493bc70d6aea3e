// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxListLimit 列表接口单次返回上限
const maxListLimit = 100

// BindLimit 从查询参数 limit 读取列表上限，缺省或非法时取 maxListLimit
func BindLimit(c *gin.Context) int {
	limit := parseIntWithDefault(c.Query("limit"), maxListLimit)
	if limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindProjectID 从 URI 绑定项目 ID
func BindProjectID(c *gin.Context) string {
	return c.Param("pid")
}

// BindID 从 URI 绑定资源 ID
func BindID(c *gin.Context) string {
	return c.Param("id")
}
