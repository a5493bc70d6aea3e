package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/domain/entity"
	"seo-flow-api/internal/domain/repository"
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

type fakeProjects struct {
	repository.ProjectRepository
	gotLimit int
}

func (f *fakeProjects) ListByUser(_ context.Context, userID string, opts repository.ListOptions) ([]*entity.Project, error) {
	f.gotLimit = opts.Limit
	return []*entity.Project{entity.NewProject(userID, "Acme", "https://acme.io")}, nil
}

type fakeRecent struct {
	mu     sync.Mutex
	limits map[string]int
	err    error
}

func (f *fakeRecent) record(name string, limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits[name] = limit
}

func (f *fakeRecent) RecentBriefs(_ context.Context, _ string, limit int) ([]repository.BriefSummary, error) {
	f.record("briefs", limit)
	return []repository.BriefSummary{{TargetKeyword: "crm", ProjectName: "Acme"}}, nil
}

func (f *fakeRecent) RecentAudits(_ context.Context, _ string, limit int) ([]repository.AuditSummary, error) {
	f.record("audits", limit)
	if f.err != nil {
		return nil, f.err
	}
	return []repository.AuditSummary{{Kind: entity.AuditKindSite, ProjectName: "Acme"}}, nil
}

func (f *fakeRecent) RecentSimulations(_ context.Context, _ string, limit int) ([]repository.SimulationSummary, error) {
	f.record("simulations", limit)
	return nil, nil
}

func (f *fakeRecent) RecentProspects(_ context.Context, _ string, limit int) ([]repository.ProspectSummary, error) {
	f.record("prospects", limit)
	return []repository.ProspectSummary{{Name: "Jane", ProjectName: "Acme"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{Report: config.ReportConfig{Dashboard: config.DashboardConfig{
		ProjectLimit: 5, BriefLimit: 3, AuditLimit: 3, SimulationLimit: 3, ProspectLimit: 3,
	}}}
}

func TestLoad_UsesConfiguredCaps(t *testing.T) {
	projects := &fakeProjects{}
	recent := &fakeRecent{limits: map[string]int{}}
	userCtx := &fakeUserCtx{}
	svc := NewService(testConfig(), fakeTx{}, userCtx, projects, recent)

	sum, err := svc.Load(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, projects.gotLimit)
	assert.Equal(t, map[string]int{"briefs": 3, "audits": 3, "simulations": 3, "prospects": 3}, recent.limits)
	assert.Len(t, sum.Projects, 1)
	assert.Equal(t, "Acme", sum.Briefs[0].ProjectName)
	assert.Equal(t, "Jane", sum.Prospects[0].Name)
	assert.Empty(t, sum.Simulations)

	assert.Len(t, userCtx.users, 5)
	for _, u := range userCtx.users {
		assert.Equal(t, "user-1", u)
	}
}

func TestLoad_PropagatesError(t *testing.T) {
	boom := errors.New("connection reset")
	recent := &fakeRecent{limits: map[string]int{}, err: boom}
	svc := NewService(testConfig(), fakeTx{}, &fakeUserCtx{}, &fakeProjects{}, recent)

	_, err := svc.Load(context.Background(), "user-1")
	assert.ErrorIs(t, err, boom)
}
