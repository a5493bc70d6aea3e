package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/workflow/chain"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
)

const (
	ownerID    = "0d3f6a0e-7a43-4a53-9f57-111111111111"
	strangerID = "5e6f7a8b-1111-4222-8333-444444444444"
)

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeUserCtx struct {
	mu    sync.Mutex
	users []string
}

func (f *fakeUserCtx) SetUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, userID)
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects []*entity.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = p.BeforeCreate(nil)
	r.projects = append(r.projects, p)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID string, opts repository.ListOptions) ([]*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Project
	for i := len(r.projects) - 1; i >= 0; i-- {
		if r.projects[i].UserID != userID {
			continue
		}
		out = append(out, r.projects[i])
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) UpdateFolder(_ context.Context, id string, field entity.FolderField, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.ID == id {
			p.SetFolder(field, content)
		}
	}
	return nil
}

type fakeProspectRepo struct {
	mu        sync.Mutex
	prospects []*entity.OutreachProspect
}

func (r *fakeProspectRepo) Create(_ context.Context, p *entity.OutreachProspect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = p.BeforeCreate(nil)
	r.prospects = append(r.prospects, p)
	return nil
}

func (r *fakeProspectRepo) GetByID(_ context.Context, id string) (*entity.OutreachProspect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prospects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProspectRepo) ListByProject(_ context.Context, projectID string, _ repository.ListOptions) ([]*entity.OutreachProspect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OutreachProspect
	for i := len(r.prospects) - 1; i >= 0; i-- {
		if r.prospects[i].ProjectID == projectID {
			out = append(out, r.prospects[i])
		}
	}
	return out, nil
}

func (r *fakeProspectRepo) UpdateStatus(_ context.Context, id string, status entity.ProspectStatus, lastContacted *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prospects {
		if p.ID == id {
			p.Status = status
			if lastContacted != nil {
				p.LastContacted = lastContacted
			}
		}
	}
	return nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []*entity.Audit
}

func (r *fakeAuditRepo) Create(_ context.Context, a *entity.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = a.BeforeCreate(nil)
	r.audits = append(r.audits, a)
	return nil
}

func (r *fakeAuditRepo) ListByProject(_ context.Context, projectID string, _ repository.ListOptions) ([]*entity.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Audit
	for i := len(r.audits) - 1; i >= 0; i-- {
		if r.audits[i].ProjectID == projectID {
			out = append(out, r.audits[i])
		}
	}
	return out, nil
}

type noopBriefRepo struct{}

func (noopBriefRepo) Create(context.Context, *entity.ContentBrief) error { return nil }
func (noopBriefRepo) ListByProject(context.Context, string, repository.ListOptions) ([]*entity.ContentBrief, error) {
	return nil, nil
}

type noopSimulationRepo struct{}

func (noopSimulationRepo) Create(context.Context, *entity.SerpSimulation) error { return nil }
func (noopSimulationRepo) ListByProject(context.Context, string, repository.ListOptions) ([]*entity.SerpSimulation, error) {
	return nil, nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, _ *chain.Request) (*chain.Response, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &chain.Response{Text: g.text}, nil
}

// testEnv 组装处理器与内存仓储
type testEnv struct {
	engine    *gin.Engine
	projects  *fakeProjectRepo
	prospects *fakeProspectRepo
	audits    *fakeAuditRepo
	gen       *fakeGenerator
	userCtx   *fakeUserCtx
}

func newTestEnv(userID string) *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		projects:  &fakeProjectRepo{},
		prospects: &fakeProspectRepo{},
		audits:    &fakeAuditRepo{},
		gen:       &fakeGenerator{},
		userCtx:   &fakeUserCtx{},
	}

	store := report.NewStore(fakeTx{}, env.userCtx, env.audits, noopBriefRepo{}, noopSimulationRepo{})
	reports := report.NewService(nil, env.gen, workflowprompt.NewRegistry(), store)

	projectHandler := NewProjectHandler(fakeTx{}, env.userCtx, env.projects)
	reportHandler := NewReportHandler(fakeTx{}, env.userCtx, env.projects, reports)
	prospectHandler := NewProspectHandler(fakeTx{}, env.userCtx, env.projects, env.prospects, reports)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/v1/projects", projectHandler.ListProjects)
	r.POST("/v1/projects", projectHandler.CreateProject)
	r.GET("/v1/projects/:pid", projectHandler.GetProject)
	r.PUT("/v1/projects/:pid/folders/:folder", projectHandler.UpdateFolder)
	r.GET("/v1/projects/:pid/audits", reportHandler.ListAudits)
	r.POST("/v1/projects/:pid/audits", reportHandler.RunTechnicalAudit)
	r.POST("/v1/projects/:pid/prospects", prospectHandler.CreateProspect)
	r.PATCH("/v1/prospects/:id/status", prospectHandler.UpdateStatus)
	r.POST("/v1/prospects/:id/email", prospectHandler.DraftEmail)
	env.engine = r
	return env
}

func (e *testEnv) seedProject(userID, siteURL string) *entity.Project {
	p := entity.NewProject(userID, "Acme", siteURL)
	_ = e.projects.Create(context.Background(), p)
	return p
}

func (e *testEnv) seedProspect(project *entity.Project) *entity.OutreachProspect {
	p := entity.NewOutreachProspect(project.ID, project.UserID, "Jane Blogger", "https://jane.example")
	_ = e.prospects.Create(context.Background(), p)
	return p
}
