// Package dashboard 汇总用户最近的项目与报告
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
)

// Summary 仪表盘数据
type Summary struct {
	Projects    []*entity.Project
	Briefs      []repository.BriefSummary
	Audits      []repository.AuditSummary
	Simulations []repository.SimulationSummary
	Prospects   []repository.ProspectSummary
}

// Service 仪表盘服务
type Service struct {
	limits      config.DashboardConfig
	txMgr       repository.Transactor
	userCtx     repository.UserContextManager
	projectRepo repository.ProjectRepository
	recent      repository.DashboardRepository
}

// NewService 创建仪表盘服务
func NewService(
	cfg *config.Config,
	txMgr repository.Transactor,
	userCtx repository.UserContextManager,
	projectRepo repository.ProjectRepository,
	recent repository.DashboardRepository,
) *Service {
	return &Service{
		limits:      cfg.Report.Dashboard,
		txMgr:       txMgr,
		userCtx:     userCtx,
		projectRepo: projectRepo,
		recent:      recent,
	}
}

// Load 并发读取五个列表，每个列表在独立的用户事务中完成
// 调用方的 context 中不能携带事务，否则多个 goroutine 会共享同一连接
func (s *Service) Load(ctx context.Context, userID string) (*Summary, error) {
	out := &Summary{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.withUser(gctx, userID, func(ctx context.Context) (err error) {
			out.Projects, err = s.projectRepo.ListByUser(ctx, userID, repository.NewListOptions(s.limits.ProjectLimit))
			return err
		})
	})
	g.Go(func() error {
		return s.withUser(gctx, userID, func(ctx context.Context) (err error) {
			out.Briefs, err = s.recent.RecentBriefs(ctx, userID, s.limits.BriefLimit)
			return err
		})
	})
	g.Go(func() error {
		return s.withUser(gctx, userID, func(ctx context.Context) (err error) {
			out.Audits, err = s.recent.RecentAudits(ctx, userID, s.limits.AuditLimit)
			return err
		})
	})
	g.Go(func() error {
		return s.withUser(gctx, userID, func(ctx context.Context) (err error) {
			out.Simulations, err = s.recent.RecentSimulations(ctx, userID, s.limits.SimulationLimit)
			return err
		})
	})
	g.Go(func() error {
		return s.withUser(gctx, userID, func(ctx context.Context) (err error) {
			out.Prospects, err = s.recent.RecentProspects(ctx, userID, s.limits.ProspectLimit)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) withUser(ctx context.Context, userID string, fn func(context.Context) error) error {
	return s.txMgr.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userCtx.SetUser(txCtx, userID); err != nil {
			return err
		}
		return fn(txCtx)
	})
}
