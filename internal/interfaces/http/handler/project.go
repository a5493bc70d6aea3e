// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"strings"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/interfaces/http/dto"
	"seo-flow-api/internal/interfaces/http/middleware"
	"seo-flow-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	scope       userScope
	projectRepo repository.ProjectRepository
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(txMgr repository.Transactor, userCtx repository.UserContextManager, projectRepo repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{
		scope:       newUserScope(txMgr, userCtx),
		projectRepo: projectRepo,
	}
}

// ListProjects 获取项目列表
// @Summary 获取项目列表
// @Description 获取当前用户的项目，按创建时间倒序
// @Tags Projects
// @Produce json
// @Param limit query int false "条数上限"
// @Success 200 {object} dto.Response[dto.ProjectListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	limit := dto.BindLimit(c)

	var projects []*entity.Project
	err := h.scope.run(ctx, userID, func(ctx context.Context) (err error) {
		projects, err = h.projectRepo.ListByUser(ctx, userID, repository.NewListOptions(limit))
		return err
	})
	if err != nil {
		logger.Error(ctx, "failed to list projects", err)
		dto.InternalError(c, "failed to list projects")
		return
	}

	dto.Success(c, dto.ToProjectListResponse(projects))
}

// CreateProject 创建项目
// @Summary 创建项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[dto.ProjectResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project := entity.NewProject(userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.SiteURL))
	err := h.scope.run(ctx, userID, func(ctx context.Context) error {
		return h.projectRepo.Create(ctx, project)
	})
	if err != nil {
		logger.Error(ctx, "failed to create project", err)
		dto.InternalError(c, "failed to create project")
		return
	}

	dto.Created(c, dto.ToProjectResponse(project))
}

// GetProject 获取项目详情
// @Summary 获取项目详情
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project := h.scope.requireOwnedProject(c, h.projectRepo, middleware.GetUserIDFromGin(c))
	if project == nil {
		return
	}
	dto.Success(c, dto.ToProjectResponse(project))
}

// UpdateFolder 更新项目的单个文件夹字段
// @Summary 更新项目文件夹
// @Tags Projects
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param folder path string true "文件夹字段名"
// @Param body body dto.UpdateFolderRequest true "文件夹内容"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/folders/{folder} [put]
func (h *ProjectHandler) UpdateFolder(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	field := entity.FolderField(c.Param("folder"))
	if !field.IsValid() {
		dto.BadRequest(c, "unknown folder: "+string(field))
		return
	}

	var req dto.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project := h.scope.requireOwnedProject(c, h.projectRepo, userID)
	if project == nil {
		return
	}

	err := h.scope.run(ctx, userID, func(ctx context.Context) error {
		return h.projectRepo.UpdateFolder(ctx, project.ID, field, *req.Content)
	})
	if err != nil {
		logger.Error(ctx, "failed to update project folder", err, "folder", string(field))
		dto.InternalError(c, "failed to update project folder")
		return
	}

	project.SetFolder(field, *req.Content)
	dto.Success(c, dto.ToProjectResponse(project))
}
