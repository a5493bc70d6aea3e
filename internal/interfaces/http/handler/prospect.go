package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/interfaces/http/dto"
	"seo-flow-api/internal/interfaces/http/middleware"
	wfmodel "seo-flow-api/internal/workflow/model"
	"seo-flow-api/pkg/errors"
	"seo-flow-api/pkg/logger"
)

// ProspectHandler 外链联系对象处理器
type ProspectHandler struct {
	scope        userScope
	projectRepo  repository.ProjectRepository
	prospectRepo repository.ProspectRepository
	reports      *report.Service
	now          func() time.Time
}

// NewProspectHandler 创建外链联系对象处理器
func NewProspectHandler(
	txMgr repository.Transactor,
	userCtx repository.UserContextManager,
	projectRepo repository.ProjectRepository,
	prospectRepo repository.ProspectRepository,
	reports *report.Service,
) *ProspectHandler {
	return &ProspectHandler{
		scope:        newUserScope(txMgr, userCtx),
		projectRepo:  projectRepo,
		prospectRepo: prospectRepo,
		reports:      reports,
		now:          time.Now,
	}
}

// ListProspects 获取项目下的联系对象
// @Summary 联系对象列表
// @Tags Prospects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.ProspectResponse]
// @Router /v1/projects/{pid}/prospects [get]
func (h *ProspectHandler) ListProspects(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	project := h.scope.requireOwnedProject(c, h.projectRepo, userID)
	if project == nil {
		return
	}

	var prospects []*entity.OutreachProspect
	err := h.scope.run(ctx, userID, func(ctx context.Context) (err error) {
		prospects, err = h.prospectRepo.ListByProject(ctx, project.ID, repository.NewListOptions(dto.BindLimit(c)))
		return err
	})
	if err != nil {
		logger.Error(ctx, "failed to list prospects", err)
		dto.InternalError(c, "failed to list prospects")
		return
	}
	dto.Success(c, dto.ToProspectListResponse(prospects))
}

// CreateProspect 创建联系对象
// @Summary 创建联系对象
// @Tags Prospects
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateProspectRequest true "联系对象"
// @Success 201 {object} dto.Response[dto.ProspectResponse]
// @Router /v1/projects/{pid}/prospects [post]
func (h *ProspectHandler) CreateProspect(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project := h.scope.requireOwnedProject(c, h.projectRepo, userID)
	if project == nil {
		return
	}

	prospect := entity.NewOutreachProspect(project.ID, userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Website))
	prospect.Email = req.Email
	prospect.Notes = req.Notes
	prospect.CreatedAt = h.now()

	err := h.scope.run(c.Request.Context(), userID, func(ctx context.Context) error {
		return h.prospectRepo.Create(ctx, prospect)
	})
	if err != nil {
		logger.Error(ctx, "failed to create prospect", err)
		dto.InternalError(c, "failed to create prospect")
		return
	}
	dto.Created(c, dto.ToProspectResponse(prospect))
}

// ownedProspect 读取当前用户的联系对象，返回 nil 表示已写出响应
func (h *ProspectHandler) ownedProspect(c *gin.Context, userID string) *entity.OutreachProspect {
	ctx := c.Request.Context()
	id := dto.BindID(c)
	if !validID(id) {
		dto.AppError(c, errors.ErrProspectNotFound)
		return nil
	}

	var prospect *entity.OutreachProspect
	err := h.scope.run(ctx, userID, func(ctx context.Context) error {
		p, err := h.prospectRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p != nil && p.UserID == userID {
			prospect = p
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "failed to load prospect", err, "prospect_id", id)
		dto.InternalError(c, "failed to load prospect")
		return nil
	}
	if prospect == nil {
		dto.AppError(c, errors.ErrProspectNotFound)
		return nil
	}
	return prospect
}

// UpdateStatus 更新联系状态，进入 Contacted 时记录联系时间
// @Summary 更新联系状态
// @Tags Prospects
// @Accept json
// @Produce json
// @Param id path string true "联系对象 ID"
// @Param body body dto.UpdateProspectStatusRequest true "状态"
// @Success 200 {object} dto.Response[dto.ProspectResponse]
// @Router /v1/prospects/{id}/status [patch]
func (h *ProspectHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.UpdateProspectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	status := entity.ProspectStatus(req.Status)
	if !status.IsValid() {
		dto.BadRequest(c, "invalid prospect status: "+req.Status)
		return
	}

	prospect := h.ownedProspect(c, userID)
	if prospect == nil {
		return
	}

	prospect.TransitionTo(status, h.now())
	err := h.scope.run(ctx, userID, func(ctx context.Context) error {
		return h.prospectRepo.UpdateStatus(ctx, prospect.ID, prospect.Status, prospect.LastContacted)
	})
	if err != nil {
		logger.Error(ctx, "failed to update prospect status", err, "prospect_id", prospect.ID)
		dto.InternalError(c, "failed to update prospect status")
		return
	}
	dto.Success(c, dto.ToProspectResponse(prospect))
}

// DraftEmail 使用所属项目的站点 URL 起草外联邮件
// @Summary 起草外联邮件
// @Tags Prospects
// @Produce json
// @Param id path string true "联系对象 ID"
// @Success 200 {object} dto.Response[dto.PipelineResponse[string]]
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/prospects/{id}/email [post]
func (h *ProspectHandler) DraftEmail(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	prospect := h.ownedProspect(c, userID)
	if prospect == nil {
		return
	}

	project, err := h.scope.ownedProject(ctx, h.projectRepo, userID, prospect.ProjectID)
	if err != nil {
		logger.Error(ctx, "failed to load project", err, "project_id", prospect.ProjectID)
		dto.InternalError(c, "failed to load project")
		return
	}
	if project == nil {
		dto.AppError(c, errors.ErrProjectNotFound)
		return
	}

	out, err := h.reports.OutreachEmail(ctx, report.Identity{UserID: userID, ProjectID: project.ID}, wfmodel.OutreachEmailInput{
		ProspectName:    prospect.Name,
		ProspectWebsite: prospect.Website,
		ProjectURL:      project.SiteURL,
	})
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeOutcome(c, out)
}
