package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 报告记录只允许创建和读取，没有更新路径

// AuditKind 审计类型
type AuditKind string

const (
	AuditKindTechnical AuditKind = "technical"
	AuditKindSite      AuditKind = "site"
)

// AuditStatusCompleted 审计完成状态
const AuditStatusCompleted = "completed"

// Audit 审计记录（技术审计与全站审计共用）
type Audit struct {
	ID                 string         `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID          string         `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID             string         `json:"user_id" gorm:"type:uuid;index;not null"`
	Kind               AuditKind      `json:"kind" gorm:"type:varchar(32);not null"`
	Status             string         `json:"status" gorm:"type:varchar(32);not null"`
	OverallHealthScore *int           `json:"overall_health_score,omitempty"`
	ExecutiveSummary   string         `json:"executive_summary,omitempty" gorm:"type:text"`
	FullReport         datatypes.JSON `json:"full_report" gorm:"type:jsonb;not null"`
	CreatedAt          time.Time      `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (Audit) TableName() string {
	return "audits"
}

// BeforeCreate 生成主键
func (a *Audit) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ContentBrief 内容简报记录
type ContentBrief struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID     string         `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID        string         `json:"user_id" gorm:"type:uuid;index;not null"`
	TargetKeyword string         `json:"target_keyword" gorm:"type:text;not null"`
	BriefData     datatypes.JSON `json:"brief_data" gorm:"type:jsonb;not null"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (ContentBrief) TableName() string {
	return "content_briefs"
}

// BeforeCreate 生成主键
func (b *ContentBrief) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// SerpSimulation SERP 排名模拟记录
type SerpSimulation struct {
	ID                string         `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID         string         `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID            string         `json:"user_id" gorm:"type:uuid;index;not null"`
	TargetKeyword     string         `json:"target_keyword" gorm:"type:text;not null"`
	InputDraftContent string         `json:"input_draft_content" gorm:"type:text"`
	SimulationReport  datatypes.JSON `json:"simulation_report" gorm:"type:jsonb;not null"`
	CreatedAt         time.Time      `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (SerpSimulation) TableName() string {
	return "serp_simulations"
}

// BeforeCreate 生成主键
func (s *SerpSimulation) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
