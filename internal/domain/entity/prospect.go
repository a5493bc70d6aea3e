package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProspectStatus 外链联系状态
type ProspectStatus string

const (
	ProspectStatusIdentified   ProspectStatus = "Identified"
	ProspectStatusContacted    ProspectStatus = "Contacted"
	ProspectStatusReplied      ProspectStatus = "Replied"
	ProspectStatusLinkAcquired ProspectStatus = "Link Acquired"
	ProspectStatusRejected     ProspectStatus = "Rejected"
)

// IsValid 检查状态是否合法
func (s ProspectStatus) IsValid() bool {
	switch s {
	case ProspectStatusIdentified, ProspectStatusContacted, ProspectStatusReplied,
		ProspectStatusLinkAcquired, ProspectStatusRejected:
		return true
	}
	return false
}

// OutreachProspect 外链联系对象
type OutreachProspect struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID     string         `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID        string         `json:"user_id" gorm:"type:uuid;index;not null"`
	Name          string         `json:"name" gorm:"type:varchar(255);not null"`
	Website       string         `json:"website" gorm:"type:text;not null"`
	Email         *string        `json:"email,omitempty" gorm:"type:varchar(255)"`
	Status        ProspectStatus `json:"status" gorm:"type:varchar(32);not null"`
	Notes         *string        `json:"notes,omitempty" gorm:"type:text"`
	LastContacted *time.Time     `json:"last_contacted,omitempty"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (OutreachProspect) TableName() string {
	return "outreach_prospects"
}

// BeforeCreate 生成主键并补全默认状态
func (p *OutreachProspect) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProspectStatusIdentified
	}
	return nil
}

// NewOutreachProspect 创建外链联系对象
func NewOutreachProspect(projectID, userID, name, website string) *OutreachProspect {
	return &OutreachProspect{
		ProjectID: projectID,
		UserID:    userID,
		Name:      name,
		Website:   website,
		Status:    ProspectStatusIdentified,
		CreatedAt: time.Now(),
	}
}

// TransitionTo 切换状态，进入 Contacted 时记录联系时间
func (p *OutreachProspect) TransitionTo(status ProspectStatus, now time.Time) {
	p.Status = status
	if status == ProspectStatusContacted {
		t := now
		p.LastContacted = &t
	}
}
