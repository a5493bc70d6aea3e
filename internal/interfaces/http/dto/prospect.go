// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"seo-flow-api/internal/domain/entity"
)

// CreateProspectRequest 创建外链联系对象请求
type CreateProspectRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Website string  `json:"website" binding:"required,url,max=2048"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateProspectStatusRequest 更新联系状态请求
type UpdateProspectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ProspectResponse 联系对象响应
type ProspectResponse struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	Name          string     `json:"name"`
	Website       string     `json:"website"`
	Email         *string    `json:"email,omitempty"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	LastContacted *time.Time `json:"last_contacted,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToProspectResponse 转换为联系对象响应
func ToProspectResponse(p *entity.OutreachProspect) *ProspectResponse {
	if p == nil {
		return nil
	}
	return &ProspectResponse{
		ID:            p.ID,
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		Website:       p.Website,
		Email:         p.Email,
		Status:        string(p.Status),
		Notes:         p.Notes,
		LastContacted: p.LastContacted,
		CreatedAt:     p.CreatedAt,
	}
}

// ToProspectListResponse 转换为联系对象列表
func ToProspectListResponse(prospects []*entity.OutreachProspect) []*ProspectResponse {
	out := make([]*ProspectResponse, 0, len(prospects))
	for _, p := range prospects {
		out = append(out, ToProspectResponse(p))
	}
	return out
}
