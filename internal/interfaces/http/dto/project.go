// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"seo-flow-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	SiteURL string `json:"site_url" binding:"required,url,max=2048"`
}

// UpdateFolderRequest 更新文件夹内容请求，内容允许为空
type UpdateFolderRequest struct {
	Content *string `json:"content" binding:"required"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"user_id"`
	Name                    string    `json:"name"`
	SiteURL                 string    `json:"site_url"`
	FolderAccessCredentials string    `json:"folder_access_credentials"`
	FolderPreFixReports     string    `json:"folder_pre_fix_reports"`
	FolderFixesLogs         string    `json:"folder_fixes_logs"`
	FolderPostFixReports    string    `json:"folder_post_fix_reports"`
	FolderCommunicationLogs string    `json:"folder_communication_logs"`
	FolderFinalReport       string    `json:"folder_final_report"`
	CreatedAt               time.Time `json:"created_at"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []*ProjectResponse `json:"projects"`
}

// ToProjectResponse 转换为项目响应
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:                      p.ID,
		UserID:                  p.UserID,
		Name:                    p.Name,
		SiteURL:                 p.SiteURL,
		FolderAccessCredentials: p.Folder(entity.FolderAccessCredentials),
		FolderPreFixReports:     p.Folder(entity.FolderPreFixReports),
		FolderFixesLogs:         p.Folder(entity.FolderFixesLogs),
		FolderPostFixReports:    p.Folder(entity.FolderPostFixReports),
		FolderCommunicationLogs: p.Folder(entity.FolderCommunicationLogs),
		FolderFinalReport:       p.Folder(entity.FolderFinalReport),
		CreatedAt:               p.CreatedAt,
	}
}

// ToProjectListResponse 转换为项目列表响应
func ToProjectListResponse(projects []*entity.Project) *ProjectListResponse {
	out := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return &ProjectListResponse{Projects: out}
}
