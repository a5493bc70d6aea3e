package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-flow-api/internal/application/quota"
	"seo-flow-api/internal/domain/entity"
	wfmodel "seo-flow-api/internal/workflow/model"
	workflowport "seo-flow-api/internal/workflow/port"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func sampleTechnicalAudit() *wfmodel.TechnicalAuditResult {
	return &wfmodel.TechnicalAuditResult{AuditResults: []wfmodel.AuditCategory{{
		CategoryName: "On-Page SEO",
		Checks: []wfmodel.AuditCheck{{
			CheckName:      "Title Tag Presence",
			Status:         wfmodel.CheckPass,
			Description:    "d",
			Recommendation: "r",
		}},
	}}}
}

func sampleSiteAudit() *wfmodel.SiteAuditResult {
	return &wfmodel.SiteAuditResult{
		AuditSummary: &wfmodel.SiteAuditSummary{SiteURL: "https://example.com", OverallHealthScore: 72, ExecutiveSummary: "Solid base, slow pages."},
		Findings: []wfmodel.SiteAuditFinding{{
			IssueID:           "PERF-001",
			Category:          "Performance",
			Title:             "Slow LCP",
			Severity:          wfmodel.SeverityHigh,
			Description:       "LCP averages 3.1s",
			BusinessImpact:    "Lost conversions",
			AffectedURLs:      []string{"https://example.com/about"},
			RecommendedAction: "Compress hero images",
		}},
	}
}

func sampleSerp() *wfmodel.SerpSimulationResult {
	return &wfmodel.SerpSimulationResult{
		PredictedRank:   "8-12",
		Strengths:       []string{"clear intro"},
		Weaknesses:      []string{"no comparison table"},
		Recommendations: []string{"add a comparison table", "answer FAQs"},
	}
}

func sampleBrief() *wfmodel.ContentBrief {
	return &wfmodel.ContentBrief{
		TargetKeyword:        "seo tools",
		UserIntent:           "compare tools",
		RecommendedStructure: []wfmodel.HeadingGroup{{H2: "Best tools", H3s: []string{"Free", "Paid"}}},
		KeyEntities:          []string{"Ahrefs"},
		PeopleAlsoAsk:        []string{"What is the best SEO tool?"},
	}
}

func TestRoundTripFidelity(t *testing.T) {
	ctx := context.Background()

	t.Run("technical audit", func(t *testing.T) {
		want := sampleTechnicalAudit()
		f := newFixture(mustJSON(t, want))
		out, err := f.service().TechnicalAudit(ctx, testIdentity, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, want, out.Result)
	})

	t.Run("site audit", func(t *testing.T) {
		want := sampleSiteAudit()
		f := newFixture(mustJSON(t, want))
		out, err := f.service().SiteAudit(ctx, testIdentity, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, want, out.Result)

		require.Len(t, f.audits.rows, 1)
		rec := f.audits.rows[0]
		assert.Equal(t, entity.AuditKindSite, rec.Kind)
		require.NotNil(t, rec.OverallHealthScore)
		assert.Equal(t, 72, *rec.OverallHealthScore)
		assert.Equal(t, "Solid base, slow pages.", rec.ExecutiveSummary)
	})

	t.Run("serp simulation", func(t *testing.T) {
		want := sampleSerp()
		f := newFixture(mustJSON(t, want))
		out, err := f.service().SerpSimulation(ctx, testIdentity, "seo tools", "draft")
		require.NoError(t, err)
		assert.Equal(t, want, out.Result)
	})

	t.Run("content brief", func(t *testing.T) {
		want := sampleBrief()
		f := newFixture("```json\n" + mustJSON(t, want) + "\n```")
		out, err := f.service().ContentBrief(ctx, testIdentity, "seo tools")
		require.NoError(t, err)
		assert.Equal(t, want, out.Result)

		require.Len(t, f.briefs.rows, 1)
		var stored wfmodel.ContentBrief
		require.NoError(t, json.Unmarshal(f.briefs.rows[0].BriefData, &stored))
		assert.Equal(t, *want, stored)
	})

	t.Run("outreach email", func(t *testing.T) {
		f := newFixture("  Hi Jane,\n\nLoved your post.\n")
		out, err := f.service().OutreachEmail(ctx, Identity{}, wfmodel.OutreachEmailInput{ProspectName: "Jane", ProspectWebsite: "https://jane.dev", ProjectURL: "https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Hi Jane,\n\nLoved your post.", out.Result)
		assert.Equal(t, StateValid, out.State)
		assert.Nil(t, f.gen.last.Schema)
		assert.Zero(t, f.persisted())
	})
}

func TestMissingRequiredFieldIsValidationError(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		text string
		run  func(*Service) error
	}{
		{"audit_results missing", `{"results":[]}`, func(s *Service) error {
			_, err := s.TechnicalAudit(ctx, testIdentity, "https://example.com")
			return err
		}},
		{"audit_results not array", `{"audit_results":{"category_name":"x"}}`, func(s *Service) error {
			_, err := s.TechnicalAudit(ctx, testIdentity, "https://example.com")
			return err
		}},
		{"findings missing", `{"audit_summary":{"site_url":"x","overall_health_score":1,"executive_summary":"y"}}`, func(s *Service) error {
			_, err := s.SiteAudit(ctx, testIdentity, "https://example.com")
			return err
		}},
		{"audit_summary null", `{"audit_summary":null,"findings":[]}`, func(s *Service) error {
			_, err := s.SiteAudit(ctx, testIdentity, "https://example.com")
			return err
		}},
		{"recommended_structure not array", `{"target_keyword":"k","recommended_structure":"none"}`, func(s *Service) error {
			_, err := s.ContentBrief(ctx, testIdentity, "k")
			return err
		}},
		{"not json", "Sorry, I cannot help with that.", func(s *Service) error {
			_, err := s.ContentBrief(ctx, testIdentity, "k")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.text)
			err := tc.run(f.service())
			require.Error(t, err)

			pe, ok := AsPipelineError(err)
			require.True(t, ok)
			assert.Equal(t, KindValidation, pe.Kind)
			assert.Contains(t, pe.Message, invalidResponseMessage)
			assert.ErrorIs(t, err, errInvalidResponse)
			assert.Zero(t, f.persisted())
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestMissingCredentialIsConfigurationError(t *testing.T) {
	f := newFixture("")
	f.gen.err = fmt.Errorf("%w: gemini", workflowport.ErrProviderNotConfigured)

	_, err := f.service().ContentBrief(context.Background(), testIdentity, "seo tools")
	require.Error(t, err)

	pe, ok := AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, KindConfiguration, pe.Kind)
	assert.Equal(t, configurationMessage, pe.Message)
	assert.Zero(t, f.persisted())
	assert.Zero(t, f.tx.calls)
}

func TestTransportErrorKeepsOriginalMessage(t *testing.T) {
	f := newFixture("")
	f.gen.err = errors.New("503 model overloaded")

	_, err := f.service().TechnicalAudit(context.Background(), testIdentity, "https://example.com")
	require.Error(t, err)

	pe, ok := AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, pe.Kind)
	assert.Equal(t, `Failed to audit "https://example.com": 503 model overloaded`, pe.Message)
}

func TestPersistFailureIsNonFatal(t *testing.T) {
	labels := map[string]func(*testing.T, *fixture) (State, *PipelineError, error){
		"Audit": func(t *testing.T, f *fixture) (State, *PipelineError, error) {
			f.gen.text = mustJSON(t, sampleTechnicalAudit())
			f.audits.err = errInsert
			out, err := f.service().TechnicalAudit(context.Background(), testIdentity, "https://example.com")
			if err != nil {
				return "", nil, err
			}
			assert.NotNil(t, out.Result)
			return out.State, out.Warning, nil
		},
		"Simulation": func(t *testing.T, f *fixture) (State, *PipelineError, error) {
			f.gen.text = mustJSON(t, sampleSerp())
			f.simulations.err = errInsert
			out, err := f.service().SerpSimulation(context.Background(), testIdentity, "kw", "draft")
			if err != nil {
				return "", nil, err
			}
			assert.NotNil(t, out.Result)
			return out.State, out.Warning, nil
		},
		"Brief": func(t *testing.T, f *fixture) (State, *PipelineError, error) {
			f.gen.text = mustJSON(t, sampleBrief())
			f.briefs.err = errInsert
			out, err := f.service().ContentBrief(context.Background(), testIdentity, "kw")
			if err != nil {
				return "", nil, err
			}
			assert.NotNil(t, out.Result)
			return out.State, out.Warning, nil
		},
	}

	for label, run := range labels {
		t.Run(label, func(t *testing.T) {
			f := newFixture("")
			state, warning, err := run(t, f)
			require.NoError(t, err)
			assert.Equal(t, StatePersistFailed, state)
			require.NotNil(t, warning)
			assert.Equal(t, KindPersistence, warning.Kind)
			assert.Equal(t, label+" complete, but failed to save result: "+errInsert.Error(), warning.Message)
		})
	}
}

func TestMissingIdentitySkipsPersistence(t *testing.T) {
	f := newFixture(mustJSON(t, sampleTechnicalAudit()))

	out, err := f.service().TechnicalAudit(context.Background(), Identity{ProjectID: testIdentity.ProjectID}, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, StatePersistFailed, out.State)
	require.NotNil(t, out.Warning)
	assert.Equal(t, KindAuthentication, out.Warning.Kind)
	assert.Equal(t, unauthenticatedMessage, out.Warning.Message)
	assert.NotNil(t, out.Result)
	assert.Zero(t, f.audits.creates)
}

func TestListsAreNewestFirstAndCapped(t *testing.T) {
	f := newFixture("")
	other := Identity{UserID: testIdentity.UserID, ProjectID: "other"}
	for i := 0; i < 5; i++ {
		_, err := f.store.SaveContentBrief(context.Background(), testIdentity, wfmodel.ContentBriefInput{Keyword: fmt.Sprintf("kw-%d", i)}, sampleBrief())
		require.NoError(t, err)
	}
	_, err := f.store.SaveContentBrief(context.Background(), other, wfmodel.ContentBriefInput{Keyword: "elsewhere"}, sampleBrief())
	require.NoError(t, err)

	svc := f.service()
	all, err := svc.ListContentBriefs(context.Background(), testIdentity, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "kw-4", all[0].TargetKeyword)
	assert.Equal(t, "kw-0", all[4].TargetKeyword)

	capped, err := svc.ListContentBriefs(context.Background(), testIdentity, 3)
	require.NoError(t, err)
	assert.Len(t, capped, 3)
	assert.Equal(t, "kw-4", capped[0].TargetKeyword)

	for _, u := range f.userCtx.users {
		assert.Equal(t, testIdentity.UserID, u)
	}
}

func TestTechnicalAuditScenario(t *testing.T) {
	text := `{"audit_results":[{"category_name":"On-Page SEO","checks":[{"check_name":"Title Tag Presence","status":"PASS","description":"d","recommendation":"r"}]}]}`
	f := newFixture(text)

	out, err := f.service().TechnicalAudit(context.Background(), testIdentity, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, StatePersisted, out.State)
	assert.Nil(t, out.Warning)
	assert.Equal(t, wfmodel.CheckPass, out.Result.AuditResults[0].Checks[0].Status)

	require.Len(t, f.audits.rows, 1)
	rec := f.audits.rows[0]
	assert.Equal(t, "completed", rec.Status)
	assert.Equal(t, entity.AuditKindTechnical, rec.Kind)
	assert.Equal(t, testIdentity.ProjectID, rec.ProjectID)
	assert.Equal(t, testIdentity.UserID, rec.UserID)
	assert.Nil(t, rec.OverallHealthScore)
	assert.JSONEq(t, text, string(rec.FullReport))
	assert.Equal(t, rec.ID, out.RecordID)
	assert.Equal(t, []string{testIdentity.UserID}, f.userCtx.users)

	require.Len(t, f.gen.last.Messages, 1)
	assert.Contains(t, f.gen.last.Messages[0].Content, `"https://example.com"`)
	assert.Equal(t, "technical_audit", f.gen.last.Schema.Name)
}

func TestSerpScenarioMissingPredictedRank(t *testing.T) {
	f := newFixture(`{"strengths":[],"weaknesses":[],"recommendations":["x"]}`)

	_, err := f.service().SerpSimulation(context.Background(), testIdentity, "best crm", "draft")
	require.Error(t, err)

	pe, ok := AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, pe.Kind)
	assert.Equal(t, `Failed to simulate SERP for "best crm": Invalid response format from API.`, pe.Message)
	assert.Zero(t, f.simulations.creates)
}

func TestOutreachScenarioEmptyText(t *testing.T) {
	f := newFixture("   \n ")

	out, err := f.service().OutreachEmail(context.Background(), Identity{}, wfmodel.OutreachEmailInput{ProspectName: "Jane", ProspectWebsite: "https://jane.dev", ProjectURL: "https://example.com"})
	require.Error(t, err)
	assert.Nil(t, out)

	pe, ok := AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, pe.Kind)
	assert.Equal(t, `Failed to generate email for "Jane": Invalid response format from API.`, pe.Message)
	assert.Zero(t, f.persisted())
}

func TestComposerEmbedsInputsVerbatim(t *testing.T) {
	f := newFixture(mustJSON(t, sampleSerp()))
	draft := "First line.\nSecond line with {braces}."

	_, err := f.service().SerpSimulation(context.Background(), testIdentity, "crm software", draft)
	require.NoError(t, err)

	msgs := f.gen.last.Messages
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, `"crm software"`)
	assert.Equal(t, "KEYWORD: \"crm software\"\n\nDRAFT CONTENT:\n---\n"+draft+"\n---", msgs[1].Content)

	require.Len(t, f.simulations.rows, 1)
	assert.Equal(t, draft, f.simulations.rows[0].InputDraftContent)
	assert.Equal(t, "crm software", f.simulations.rows[0].TargetKeyword)
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, canTransition(StateIdle, StateComposing))
	assert.True(t, canTransition(StateValidating, StateInvalid))
	assert.False(t, canTransition(StatePersisted, StateComposing))
	assert.False(t, canTransition(StateGenerating, StatePersisting))

	for _, s := range []State{StatePersisted, StatePersistFailed, StateInvalid, StateGenerationFailed} {
		assert.True(t, s.Terminal(), s)
		assert.Empty(t, transitions[s], s)
	}
	assert.True(t, StatePersistFailed.Succeeded())
	assert.False(t, StateInvalid.Succeeded())
}

func TestPipeline_AttributesUsageToCaller(t *testing.T) {
	usage := &memUsageRepo{}
	f := newFixture(mustJSON(t, sampleSerp()))
	f.gen.usage = quota.NewLLMUsageRecorder(usage)

	_, err := f.service().SerpSimulation(context.Background(), testIdentity, "seo tools", "draft")
	require.NoError(t, err)

	_, err = f.service().OutreachEmail(context.Background(), Identity{UserID: testIdentity.UserID}, wfmodel.OutreachEmailInput{ProspectName: "Jane", ProspectWebsite: "https://jane.dev", ProjectURL: "https://example.com"})
	require.NoError(t, err)

	require.Len(t, usage.events, 2)
	for _, evt := range usage.events {
		assert.Equal(t, testIdentity.UserID, evt.UserID)
		assert.Equal(t, 10, evt.TokensPrompt)
	}
	assert.Equal(t, "serp_simulation", usage.events[0].Workflow)
}

func TestMissingPromptIsInternalError(t *testing.T) {
	f := newFixture(mustJSON(t, sampleSerp()))
	kind := SerpSimulationKind(f.store)
	kind.Prompt = "missing_v1"
	p := NewPipeline(kind, f.gen, f.prompts, "gemini", "gemini-2.5-flash")

	_, err := p.Run(context.Background(), testIdentity, wfmodel.SerpSimulationInput{Keyword: "seo tools", DraftContent: "draft"})
	require.Error(t, err)

	pe, ok := AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, KindInternal, pe.Kind)
	assert.Zero(t, f.gen.calls)
}
