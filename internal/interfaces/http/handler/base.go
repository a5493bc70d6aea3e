package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/interfaces/http/dto"
	"seo-flow-api/pkg/errors"
	"seo-flow-api/pkg/logger"
)

// userScope 带用户上下文的短事务
// 已处于请求级事务中时复用该事务
type userScope struct {
	txMgr   repository.Transactor
	userCtx repository.UserContextManager
}

func newUserScope(txMgr repository.Transactor, userCtx repository.UserContextManager) userScope {
	return userScope{txMgr: txMgr, userCtx: userCtx}
}

// run 在设置了用户上下文的事务中执行
func (s userScope) run(ctx context.Context, userID string, fn func(context.Context) error) error {
	if s.txMgr == nil || s.userCtx == nil {
		return fmt.Errorf("transaction dependencies not configured")
	}
	return s.txMgr.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userCtx.SetUser(txCtx, userID); err != nil {
			return err
		}
		return fn(txCtx)
	})
}

// validID 路径 ID 必须是 UUID，否则按不存在处理，不触达数据库
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ownedProject 读取当前用户拥有的项目，不存在或不属于该用户时返回 nil
func (s userScope) ownedProject(ctx context.Context, projects repository.ProjectRepository, userID, projectID string) (*entity.Project, error) {
	if !validID(projectID) {
		return nil, nil
	}
	var project *entity.Project
	err := s.run(ctx, userID, func(ctx context.Context) error {
		p, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if p != nil && p.UserID == userID {
			project = p
		}
		return nil
	})
	return project, err
}

// requireOwnedProject 读取项目并在失败时写出响应，返回 nil 表示已响应
func (s userScope) requireOwnedProject(c *gin.Context, projects repository.ProjectRepository, userID string) *entity.Project {
	ctx := c.Request.Context()
	projectID := dto.BindProjectID(c)

	project, err := s.ownedProject(ctx, projects, userID, projectID)
	if err != nil {
		logger.Error(ctx, "failed to load project", err, "project_id", projectID)
		dto.InternalError(c, "failed to load project")
		return nil
	}
	if project == nil {
		dto.AppError(c, errors.ErrProjectNotFound)
		return nil
	}
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), logger.ProjectIDKey, project.ID))
	return project
}

// pipelineErrorCodes 流水线错误分类到错误码
var pipelineErrorCodes = map[report.ErrorKind]errors.ErrorCode{
	report.KindConfiguration:  errors.CodeFeatureDisabled,
	report.KindTransport:      errors.CodeLLMProviderError,
	report.KindValidation:     errors.CodeValidationFailed,
	report.KindAuthentication: errors.CodeUnauthorized,
	report.KindPersistence:    errors.CodePersistenceFailed,
	report.KindInternal:       errors.CodeInternalError,
}

// writePipelineError 将流水线的致命错误写为响应
func writePipelineError(c *gin.Context, err error) {
	pe, ok := report.AsPipelineError(err)
	if !ok {
		logger.Error(c.Request.Context(), "unexpected report error", err)
		dto.InternalError(c, "internal server error")
		return
	}
	code, ok := pipelineErrorCodes[pe.Kind]
	if !ok {
		code = errors.CodeInternalError
	}
	dto.AppError(c, errors.New(code, pe.Message))
}

// writeOutcome 写出流水线结果，已保存时返回 201
func writeOutcome[T any](c *gin.Context, out *report.Outcome[T]) {
	resp := dto.ToPipelineResponse(out)
	if out.RecordID != "" {
		dto.Created(c, resp)
		return
	}
	dto.Success(c, resp)
}
