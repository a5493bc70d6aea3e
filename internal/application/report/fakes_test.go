package report

import (
	"context"
	"errors"
	"sync"

	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	llmctx "seo-flow-api/internal/domain/service"
	"seo-flow-api/internal/workflow/chain"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
	last  *chain.Request
	// usage 非空时模拟模型回调写入一条用量
	usage llmctx.LLMUsageRecorder
}

func (g *fakeGenerator) Generate(ctx context.Context, req *chain.Request) (*chain.Response, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	if g.usage != nil {
		_ = g.usage.Record(ctx, llmctx.LLMUsageInput{
			UserID:           llmctx.UserFromContext(ctx),
			Workflow:         req.Workflow,
			Provider:         req.Provider,
			Model:            req.Model,
			PromptTokens:     10,
			CompletionTokens: 20,
		})
	}
	return &chain.Response{Text: g.text}, nil
}

type memUsageRepo struct{ events []*entity.LLMUsageEvent }

func (r *memUsageRepo) Create(_ context.Context, e *entity.LLMUsageEvent) error {
	r.events = append(r.events, e)
	return nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUserCtx struct{ users []string }

func (f *fakeUserCtx) SetUser(_ context.Context, userID string) error {
	f.users = append(f.users, userID)
	return nil
}

// memRepo 按插入顺序保存记录，列表按倒序返回
type memRepo[E any] struct {
	mu      sync.Mutex
	rows    []E
	project func(E) string
	err     error
	creates int
}

func (r *memRepo[E]) Create(_ context.Context, e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, e)
	return nil
}

func (r *memRepo[E]) ListByProject(_ context.Context, projectID string, opts repository.ListOptions) ([]E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []E
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.project(r.rows[i]) != projectID {
			continue
		}
		out = append(out, r.rows[i])
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

type fixture struct {
	gen         *fakeGenerator
	tx          *fakeTx
	userCtx     *fakeUserCtx
	audits      *memRepo[*entity.Audit]
	briefs      *memRepo[*entity.ContentBrief]
	simulations *memRepo[*entity.SerpSimulation]
	store       *Store
	prompts     *workflowprompt.Registry
}

func newFixture(text string) *fixture {
	f := &fixture{
		gen:         &fakeGenerator{text: text},
		tx:          &fakeTx{},
		userCtx:     &fakeUserCtx{},
		audits:      &memRepo[*entity.Audit]{project: func(a *entity.Audit) string { return a.ProjectID }},
		briefs:      &memRepo[*entity.ContentBrief]{project: func(b *entity.ContentBrief) string { return b.ProjectID }},
		simulations: &memRepo[*entity.SerpSimulation]{project: func(s *entity.SerpSimulation) string { return s.ProjectID }},
		prompts:     workflowprompt.NewRegistry(),
	}
	f.store = NewStore(f.tx, f.userCtx, f.audits, f.briefs, f.simulations)
	return f
}

func (f *fixture) service() *Service {
	return NewService(nil, f.gen, f.prompts, f.store)
}

func (f *fixture) persisted() int {
	return len(f.audits.rows) + len(f.briefs.rows) + len(f.simulations.rows)
}

var errInsert = errors.New(`new row violates row-level security policy for table "audits"`)

var testIdentity = Identity{UserID: "0d3f6a0e-7a43-4a53-9f57-111111111111", ProjectID: "9b1c2d3e-0000-4000-8000-222222222222"}
