// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"seo-flow-api/internal/application/dashboard"
	"seo-flow-api/internal/domain/repository"
)

// DashboardResponse 仪表盘响应
type DashboardResponse struct {
	Projects    []*ProjectResponse             `json:"projects"`
	Briefs      []repository.BriefSummary      `json:"briefs"`
	Audits      []repository.AuditSummary      `json:"audits"`
	Simulations []repository.SimulationSummary `json:"simulations"`
	Prospects   []repository.ProspectSummary   `json:"prospects"`
}

// ToDashboardResponse 转换仪表盘数据，空列表输出为 []
func ToDashboardResponse(s *dashboard.Summary) *DashboardResponse {
	resp := &DashboardResponse{
		Projects:    ToProjectListResponse(s.Projects).Projects,
		Briefs:      s.Briefs,
		Audits:      s.Audits,
		Simulations: s.Simulations,
		Prospects:   s.Prospects,
	}
	if resp.Briefs == nil {
		resp.Briefs = []repository.BriefSummary{}
	}
	if resp.Audits == nil {
		resp.Audits = []repository.AuditSummary{}
	}
	if resp.Simulations == nil {
		resp.Simulations = []repository.SimulationSummary{}
	}
	if resp.Prospects == nil {
		resp.Prospects = []repository.ProspectSummary{}
	}
	return resp
}
