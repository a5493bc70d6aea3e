package report

import (
	"context"
	"strings"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	wfmodel "seo-flow-api/internal/workflow/model"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
)

// Service 报告流水线门面，五类报告各持有一个独立的流水线实例
type Service struct {
	store *Store

	technical *Pipeline[wfmodel.TechnicalAuditInput, *wfmodel.TechnicalAuditResult]
	site      *Pipeline[wfmodel.SiteAuditInput, *wfmodel.SiteAuditResult]
	serp      *Pipeline[wfmodel.SerpSimulationInput, *wfmodel.SerpSimulationResult]
	brief     *Pipeline[wfmodel.ContentBriefInput, *wfmodel.ContentBrief]
	outreach  *Pipeline[wfmodel.OutreachEmailInput, string]
}

// NewService 创建报告服务，使用默认提供商及其模型
func NewService(cfg *config.Config, generator Generator, prompts *workflowprompt.Registry, store *Store) *Service {
	provider, model := "", ""
	if cfg != nil {
		name, p, ok := cfg.LLM.Provider("")
		provider = name
		if ok {
			model = strings.TrimSpace(p.Model)
		}
	}

	return &Service{
		store:     store,
		technical: NewPipeline(TechnicalAuditKind(store), generator, prompts, provider, model),
		site:      NewPipeline(SiteAuditKind(store), generator, prompts, provider, model),
		serp:      NewPipeline(SerpSimulationKind(store), generator, prompts, provider, model),
		brief:     NewPipeline(ContentBriefKind(store), generator, prompts, provider, model),
		outreach:  NewPipeline(OutreachEmailKind(), generator, prompts, provider, model),
	}
}

// TechnicalAudit 对单个 URL 做技术审计
func (s *Service) TechnicalAudit(ctx context.Context, id Identity, url string) (*Outcome[*wfmodel.TechnicalAuditResult], error) {
	return s.technical.Run(ctx, id, wfmodel.TechnicalAuditInput{URL: url})
}

// SiteAudit 基于合成抓取数据做全站审计
func (s *Service) SiteAudit(ctx context.Context, id Identity, siteURL string) (*Outcome[*wfmodel.SiteAuditResult], error) {
	return s.site.Run(ctx, id, wfmodel.SiteAuditInput{SiteURL: siteURL})
}

// SerpSimulation 预测草稿在关键词下的排名
func (s *Service) SerpSimulation(ctx context.Context, id Identity, keyword, draft string) (*Outcome[*wfmodel.SerpSimulationResult], error) {
	return s.serp.Run(ctx, id, wfmodel.SerpSimulationInput{
		Keyword:      strings.TrimSpace(keyword),
		DraftContent: strings.TrimSpace(draft),
	})
}

// ContentBrief 生成内容简报
func (s *Service) ContentBrief(ctx context.Context, id Identity, keyword string) (*Outcome[*wfmodel.ContentBrief], error) {
	return s.brief.Run(ctx, id, wfmodel.ContentBriefInput{Keyword: strings.TrimSpace(keyword)})
}

// OutreachEmail 起草外联邮件，结果不落库，身份只用于用量归属
func (s *Service) OutreachEmail(ctx context.Context, id Identity, in wfmodel.OutreachEmailInput) (*Outcome[string], error) {
	return s.outreach.Run(ctx, id, in)
}

func (s *Service) ListAudits(ctx context.Context, id Identity, limit int) ([]*entity.Audit, error) {
	return s.store.ListAudits(ctx, id, repository.NewListOptions(limit))
}

func (s *Service) ListContentBriefs(ctx context.Context, id Identity, limit int) ([]*entity.ContentBrief, error) {
	return s.store.ListContentBriefs(ctx, id, repository.NewListOptions(limit))
}

func (s *Service) ListSerpSimulations(ctx context.Context, id Identity, limit int) ([]*entity.SerpSimulation, error) {
	return s.store.ListSerpSimulations(ctx, id, repository.NewListOptions(limit))
}
