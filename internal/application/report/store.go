package report

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	wfmodel "seo-flow-api/internal/workflow/model"
)

// Store 报告持久化适配器
// 每次写入和读取都在设置了用户上下文的短事务中完成，以满足行级安全策略
type Store struct {
	txMgr   repository.Transactor
	userCtx repository.UserContextManager

	audits      repository.AuditRepository
	briefs      repository.ContentBriefRepository
	simulations repository.SerpSimulationRepository
}

// NewStore 创建报告持久化适配器
func NewStore(
	txMgr repository.Transactor,
	userCtx repository.UserContextManager,
	audits repository.AuditRepository,
	briefs repository.ContentBriefRepository,
	simulations repository.SerpSimulationRepository,
) *Store {
	return &Store{
		txMgr:       txMgr,
		userCtx:     userCtx,
		audits:      audits,
		briefs:      briefs,
		simulations: simulations,
	}
}

func (s *Store) withUser(ctx context.Context, userID string, fn func(context.Context) error) error {
	return s.txMgr.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userCtx.SetUser(txCtx, userID); err != nil {
			return err
		}
		return fn(txCtx)
	})
}

func marshalReport(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return datatypes.JSON(b), nil
}

// SaveTechnicalAudit 保存单页技术审计
func (s *Store) SaveTechnicalAudit(ctx context.Context, id Identity, result *wfmodel.TechnicalAuditResult) (string, error) {
	data, err := marshalReport(result)
	if err != nil {
		return "", err
	}
	audit := &entity.Audit{
		ProjectID:  id.ProjectID,
		UserID:     id.UserID,
		Kind:       entity.AuditKindTechnical,
		Status:     entity.AuditStatusCompleted,
		FullReport: data,
	}
	if err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		return s.audits.Create(ctx, audit)
	}); err != nil {
		return "", err
	}
	return audit.ID, nil
}

// SaveSiteAudit 保存全站审计，摘要字段同时写入独立列
func (s *Store) SaveSiteAudit(ctx context.Context, id Identity, result *wfmodel.SiteAuditResult) (string, error) {
	data, err := marshalReport(result)
	if err != nil {
		return "", err
	}
	audit := &entity.Audit{
		ProjectID:  id.ProjectID,
		UserID:     id.UserID,
		Kind:       entity.AuditKindSite,
		Status:     entity.AuditStatusCompleted,
		FullReport: data,
	}
	if sum := result.AuditSummary; sum != nil {
		score := sum.OverallHealthScore
		audit.OverallHealthScore = &score
		audit.ExecutiveSummary = sum.ExecutiveSummary
	}
	if err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		return s.audits.Create(ctx, audit)
	}); err != nil {
		return "", err
	}
	return audit.ID, nil
}

// SaveSerpSimulation 保存 SERP 模拟及其输入草稿
func (s *Store) SaveSerpSimulation(ctx context.Context, id Identity, in wfmodel.SerpSimulationInput, result *wfmodel.SerpSimulationResult) (string, error) {
	data, err := marshalReport(result)
	if err != nil {
		return "", err
	}
	sim := &entity.SerpSimulation{
		ProjectID:         id.ProjectID,
		UserID:            id.UserID,
		TargetKeyword:     in.Keyword,
		InputDraftContent: in.DraftContent,
		SimulationReport:  data,
	}
	if err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		return s.simulations.Create(ctx, sim)
	}); err != nil {
		return "", err
	}
	return sim.ID, nil
}

// SaveContentBrief 保存内容简报
func (s *Store) SaveContentBrief(ctx context.Context, id Identity, in wfmodel.ContentBriefInput, brief *wfmodel.ContentBrief) (string, error) {
	data, err := marshalReport(brief)
	if err != nil {
		return "", err
	}
	rec := &entity.ContentBrief{
		ProjectID:     id.ProjectID,
		UserID:        id.UserID,
		TargetKeyword: in.Keyword,
		BriefData:     data,
	}
	if err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		return s.briefs.Create(ctx, rec)
	}); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListAudits 项目下的审计记录，按创建时间倒序
func (s *Store) ListAudits(ctx context.Context, id Identity, opts repository.ListOptions) ([]*entity.Audit, error) {
	var out []*entity.Audit
	err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		var err error
		out, err = s.audits.ListByProject(ctx, id.ProjectID, opts)
		return err
	})
	return out, err
}

// ListContentBriefs 项目下的内容简报，按创建时间倒序
func (s *Store) ListContentBriefs(ctx context.Context, id Identity, opts repository.ListOptions) ([]*entity.ContentBrief, error) {
	var out []*entity.ContentBrief
	err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		var err error
		out, err = s.briefs.ListByProject(ctx, id.ProjectID, opts)
		return err
	})
	return out, err
}

// ListSerpSimulations 项目下的 SERP 模拟，按创建时间倒序
func (s *Store) ListSerpSimulations(ctx context.Context, id Identity, opts repository.ListOptions) ([]*entity.SerpSimulation, error) {
	var out []*entity.SerpSimulation
	err := s.withUser(ctx, id.UserID, func(ctx context.Context) error {
		var err error
		out, err = s.simulations.ListByProject(ctx, id.ProjectID, opts)
		return err
	})
	return out, err
}
