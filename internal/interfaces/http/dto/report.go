// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"
	"time"

	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/domain/entity"
)

// ContentBriefRequest 生成内容简报请求
type ContentBriefRequest struct {
	Keyword string `json:"keyword" binding:"required,max=512"`
}

// SerpSimulationRequest SERP 模拟请求
type SerpSimulationRequest struct {
	Keyword      string `json:"keyword" binding:"required,max=512"`
	DraftContent string `json:"draft_content" binding:"required"`
}

// WarningResponse 结果已生成但未保存时的提示
type WarningResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// PipelineResponse 报告流水线响应
type PipelineResponse[T any] struct {
	Result   T                `json:"result"`
	State    string           `json:"state"`
	RecordID string           `json:"record_id,omitempty"`
	Warning  *WarningResponse `json:"warning,omitempty"`
}

// ToPipelineResponse 转换流水线结果
func ToPipelineResponse[T any](out *report.Outcome[T]) *PipelineResponse[T] {
	resp := &PipelineResponse[T]{
		Result:   out.Result,
		State:    string(out.State),
		RecordID: out.RecordID,
	}
	if out.Warning != nil {
		resp.Warning = &WarningResponse{Kind: string(out.Warning.Kind), Message: out.Warning.Message}
	}
	return resp
}

// AuditResponse 审计记录响应
type AuditResponse struct {
	ID                 string          `json:"id"`
	ProjectID          string          `json:"project_id"`
	Kind               string          `json:"kind"`
	Status             string          `json:"status"`
	OverallHealthScore *int            `json:"overall_health_score,omitempty"`
	ExecutiveSummary   string          `json:"executive_summary,omitempty"`
	FullReport         json.RawMessage `json:"full_report"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ContentBriefResponse 内容简报记录响应
type ContentBriefResponse struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"project_id"`
	TargetKeyword string          `json:"target_keyword"`
	BriefData     json.RawMessage `json:"brief_data"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SerpSimulationResponse SERP 模拟记录响应
type SerpSimulationResponse struct {
	ID                string          `json:"id"`
	ProjectID         string          `json:"project_id"`
	TargetKeyword     string          `json:"target_keyword"`
	InputDraftContent string          `json:"input_draft_content"`
	SimulationReport  json.RawMessage `json:"simulation_report"`
	CreatedAt         time.Time       `json:"created_at"`
}

func ToAuditListResponse(audits []*entity.Audit) []*AuditResponse {
	out := make([]*AuditResponse, 0, len(audits))
	for _, a := range audits {
		out = append(out, &AuditResponse{
			ID:                 a.ID,
			ProjectID:          a.ProjectID,
			Kind:               string(a.Kind),
			Status:             a.Status,
			OverallHealthScore: a.OverallHealthScore,
			ExecutiveSummary:   a.ExecutiveSummary,
			FullReport:         json.RawMessage(a.FullReport),
			CreatedAt:          a.CreatedAt,
		})
	}
	return out
}

func ToContentBriefListResponse(briefs []*entity.ContentBrief) []*ContentBriefResponse {
	out := make([]*ContentBriefResponse, 0, len(briefs))
	for _, b := range briefs {
		out = append(out, &ContentBriefResponse{
			ID:            b.ID,
			ProjectID:     b.ProjectID,
			TargetKeyword: b.TargetKeyword,
			BriefData:     json.RawMessage(b.BriefData),
			CreatedAt:     b.CreatedAt,
		})
	}
	return out
}

func ToSerpSimulationListResponse(sims []*entity.SerpSimulation) []*SerpSimulationResponse {
	out := make([]*SerpSimulationResponse, 0, len(sims))
	for _, s := range sims {
		out = append(out, &SerpSimulationResponse{
			ID:                s.ID,
			ProjectID:         s.ProjectID,
			TargetKeyword:     s.TargetKeyword,
			InputDraftContent: s.InputDraftContent,
			SimulationReport:  json.RawMessage(s.SimulationReport),
			CreatedAt:         s.CreatedAt,
		})
	}
	return out
}
