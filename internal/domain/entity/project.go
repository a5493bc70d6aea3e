// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FolderField 项目文件夹字段名
type FolderField string

const (
	FolderAccessCredentials FolderField = "folder_access_credentials"
	FolderPreFixReports     FolderField = "folder_pre_fix_reports"
	FolderFixesLogs         FolderField = "folder_fixes_logs"
	FolderPostFixReports    FolderField = "folder_post_fix_reports"
	FolderCommunicationLogs FolderField = "folder_communication_logs"
	FolderFinalReport       FolderField = "folder_final_report"
)

var folderFields = []FolderField{
	FolderAccessCredentials,
	FolderPreFixReports,
	FolderFixesLogs,
	FolderPostFixReports,
	FolderCommunicationLogs,
	FolderFinalReport,
}

// FolderFields 返回全部文件夹字段
func FolderFields() []FolderField {
	out := make([]FolderField, len(folderFields))
	copy(out, folderFields)
	return out
}

// IsValid 检查字段名是否为已知的文件夹字段
func (f FolderField) IsValid() bool {
	for _, v := range folderFields {
		if v == f {
			return true
		}
	}
	return false
}

// Project SEO 项目实体
type Project struct {
	ID                      string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID                  string    `json:"user_id" gorm:"type:uuid;index;not null"`
	Name                    string    `json:"name" gorm:"type:varchar(255);not null"`
	SiteURL                 string    `json:"site_url" gorm:"type:text;not null"`
	FolderAccessCredentials string    `json:"folder_access_credentials" gorm:"type:text"`
	FolderPreFixReports     string    `json:"folder_pre_fix_reports" gorm:"type:text"`
	FolderFixesLogs         string    `json:"folder_fixes_logs" gorm:"type:text"`
	FolderPostFixReports    string    `json:"folder_post_fix_reports" gorm:"type:text"`
	FolderCommunicationLogs string    `json:"folder_communication_logs" gorm:"type:text"`
	FolderFinalReport       string    `json:"folder_final_report" gorm:"type:text"`
	CreatedAt               time.Time `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate 生成主键
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// NewProject 创建新项目
func NewProject(userID, name, siteURL string) *Project {
	return &Project{
		UserID:    userID,
		Name:      name,
		SiteURL:   siteURL,
		CreatedAt: time.Now(),
	}
}

// Folder 读取指定文件夹字段内容
func (p *Project) Folder(field FolderField) string {
	switch field {
	case FolderAccessCredentials:
		return p.FolderAccessCredentials
	case FolderPreFixReports:
		return p.FolderPreFixReports
	case FolderFixesLogs:
		return p.FolderFixesLogs
	case FolderPostFixReports:
		return p.FolderPostFixReports
	case FolderCommunicationLogs:
		return p.FolderCommunicationLogs
	case FolderFinalReport:
		return p.FolderFinalReport
	}
	return ""
}

// SetFolder 写入指定文件夹字段内容
func (p *Project) SetFolder(field FolderField, content string) {
	switch field {
	case FolderAccessCredentials:
		p.FolderAccessCredentials = content
	case FolderPreFixReports:
		p.FolderPreFixReports = content
	case FolderFixesLogs:
		p.FolderFixesLogs = content
	case FolderPostFixReports:
		p.FolderPostFixReports = content
	case FolderCommunicationLogs:
		p.FolderCommunicationLogs = content
	case FolderFinalReport:
		p.FolderFinalReport = content
	}
}
