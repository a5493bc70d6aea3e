package handler

import (
	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/interfaces/http/dto"
	"seo-flow-api/internal/interfaces/http/middleware"
	"seo-flow-api/pkg/logger"
)

// ReportHandler 报告生成与历史记录处理器
// 生成类接口不在请求级事务中运行，项目校验与落库各自使用短事务
type ReportHandler struct {
	scope       userScope
	projectRepo repository.ProjectRepository
	reports     *report.Service
}

// NewReportHandler 创建报告处理器
func NewReportHandler(
	txMgr repository.Transactor,
	userCtx repository.UserContextManager,
	projectRepo repository.ProjectRepository,
	reports *report.Service,
) *ReportHandler {
	return &ReportHandler{
		scope:       newUserScope(txMgr, userCtx),
		projectRepo: projectRepo,
		reports:     reports,
	}
}

// project 读取当前用户的项目，返回 nil 表示已写出响应
func (h *ReportHandler) project(c *gin.Context) (*entity.Project, report.Identity) {
	userID := middleware.GetUserIDFromGin(c)
	project := h.scope.requireOwnedProject(c, h.projectRepo, userID)
	if project == nil {
		return nil, report.Identity{}
	}
	return project, report.Identity{UserID: userID, ProjectID: project.ID}
}

// ListAudits 获取项目的审计记录
// @Summary 审计记录列表
// @Tags Reports
// @Produce json
// @Param pid path string true "项目 ID"
// @Param limit query int false "条数上限"
// @Success 200 {object} dto.Response[[]dto.AuditResponse]
// @Router /v1/projects/{pid}/audits [get]
func (h *ReportHandler) ListAudits(c *gin.Context) {
	project, id := h.project(c)
	if project == nil {
		return
	}
	audits, err := h.reports.ListAudits(c.Request.Context(), id, dto.BindLimit(c))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list audits", err)
		dto.InternalError(c, "failed to list audits")
		return
	}
	dto.Success(c, dto.ToAuditListResponse(audits))
}

// RunTechnicalAudit 对项目站点 URL 做技术审计
// @Summary 技术审计
// @Tags Reports
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 201 {object} dto.Response[dto.PipelineResponse[model.TechnicalAuditResult]]
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/audits [post]
func (h *ReportHandler) RunTechnicalAudit(c *gin.Context) {
	project, id := h.project(c)
	if project == nil {
		return
	}
	out, err := h.reports.TechnicalAudit(c.Request.Context(), id, project.SiteURL)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeOutcome(c, out)
}

// RunSiteAudit 对项目站点做全站审计
// @Summary 全站审计
// @Tags Reports
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 201 {object} dto.Response[dto.PipelineResponse[model.SiteAuditResult]]
// @Router /v1/projects/{pid}/site-audits [post]
func (h *ReportHandler) RunSiteAudit(c *gin.Context) {
	project, id := h.project(c)
	if project == nil {
		return
	}
	out, err := h.reports.SiteAudit(c.Request.Context(), id, project.SiteURL)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeOutcome(c, out)
}

// ListBriefs 获取项目的内容简报
// @Summary 内容简报列表
// @Tags Reports
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.ContentBriefResponse]
// @Router /v1/projects/{pid}/briefs [get]
func (h *ReportHandler) ListBriefs(c *gin.Context) {
	project, id := h.project(c)
	if project == nil {
		return
	}
	briefs, err := h.reports.ListContentBriefs(c.Request.Context(), id, dto.BindLimit(c))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list content briefs", err)
		dto.InternalError(c, "failed to list content briefs")
		return
	}
	dto.Success(c, dto.ToContentBriefListResponse(briefs))
}

// GenerateBrief 为关键词生成内容简报
// @Summary 生成内容简报
// @Tags Reports
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.ContentBriefRequest true "关键词"
// @Success 201 {object} dto.Response[dto.PipelineResponse[model.ContentBrief]]
// @Router /v1/projects/{pid}/briefs [post]
func (h *ReportHandler) GenerateBrief(c *gin.Context) {
	var req dto.ContentBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	project, id := h.project(c)
	if project == nil {
		return
	}
	out, err := h.reports.ContentBrief(c.Request.Context(), id, req.Keyword)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeOutcome(c, out)
}

// ListSimulations 获取项目的 SERP 模拟记录
// @Summary SERP 模拟列表
// @Tags Reports
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.SerpSimulationResponse]
// @Router /v1/projects/{pid}/simulations [get]
func (h *ReportHandler) ListSimulations(c *gin.Context) {
	project, id := h.project(c)
	if project == nil {
		return
	}
	sims, err := h.reports.ListSerpSimulations(c.Request.Context(), id, dto.BindLimit(c))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list serp simulations", err)
		dto.InternalError(c, "failed to list serp simulations")
		return
	}
	dto.Success(c, dto.ToSerpSimulationListResponse(sims))
}

// RunSimulation 模拟草稿在关键词下的排名
// @Summary 运行 SERP 模拟
// @Tags Reports
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.SerpSimulationRequest true "关键词与草稿"
// @Success 201 {object} dto.Response[dto.PipelineResponse[model.SerpSimulationResult]]
// @Router /v1/projects/{pid}/simulations [post]
func (h *ReportHandler) RunSimulation(c *gin.Context) {
	var req dto.SerpSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	project, id := h.project(c)
	if project == nil {
		return
	}
	out, err := h.reports.SerpSimulation(c.Request.Context(), id, req.Keyword, req.DraftContent)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeOutcome(c, out)
}
