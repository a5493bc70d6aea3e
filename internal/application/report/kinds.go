package report

import (
	"context"
	"fmt"

	"seo-flow-api/internal/workflow/chain"
	wfmodel "seo-flow-api/internal/workflow/model"
	wfnode "seo-flow-api/internal/workflow/node"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
)

// 五类报告的配置，store 为空时对应类型不落库

func TechnicalAuditKind(store *Store) Kind[wfmodel.TechnicalAuditInput, *wfmodel.TechnicalAuditResult] {
	k := Kind[wfmodel.TechnicalAuditInput, *wfmodel.TechnicalAuditResult]{
		Name:       "technical_audit",
		Label:      "Audit",
		Collection: "audits",
		Prompt:     workflowprompt.PromptTechnicalAuditV1,
		Schema:     chain.TechnicalAuditSchema(),
		Vars: func(in wfmodel.TechnicalAuditInput) map[string]any {
			return map[string]any{"url": in.URL}
		},
		Subject: func(in wfmodel.TechnicalAuditInput) string {
			return fmt.Sprintf(`Failed to audit "%s"`, in.URL)
		},
		Decode: DecodeTechnicalAudit,
	}
	if store != nil {
		k.Persist = func(ctx context.Context, id Identity, _ wfmodel.TechnicalAuditInput, r *wfmodel.TechnicalAuditResult) (string, error) {
			return store.SaveTechnicalAudit(ctx, id, r)
		}
	}
	return k
}

func SiteAuditKind(store *Store) Kind[wfmodel.SiteAuditInput, *wfmodel.SiteAuditResult] {
	k := Kind[wfmodel.SiteAuditInput, *wfmodel.SiteAuditResult]{
		Name:       "site_audit",
		Label:      "Audit",
		Collection: "audits",
		Prompt:     workflowprompt.PromptSiteAuditV1,
		Schema:     chain.SiteAuditSchema(),
		Vars: func(in wfmodel.SiteAuditInput) map[string]any {
			crawl, err := wfnode.IndentedJSON(wfnode.BuildCrawlSnapshot(in.SiteURL))
			if err != nil {
				// 合成数据只含基础类型，编码不会失败
				crawl = "{}"
			}
			return map[string]any{"crawl_data": crawl}
		},
		Subject: func(in wfmodel.SiteAuditInput) string {
			return fmt.Sprintf(`Failed to audit site "%s"`, in.SiteURL)
		},
		Decode: DecodeSiteAudit,
	}
	if store != nil {
		k.Persist = func(ctx context.Context, id Identity, _ wfmodel.SiteAuditInput, r *wfmodel.SiteAuditResult) (string, error) {
			return store.SaveSiteAudit(ctx, id, r)
		}
	}
	return k
}

func SerpSimulationKind(store *Store) Kind[wfmodel.SerpSimulationInput, *wfmodel.SerpSimulationResult] {
	k := Kind[wfmodel.SerpSimulationInput, *wfmodel.SerpSimulationResult]{
		Name:       "serp_simulation",
		Label:      "Simulation",
		Collection: "serp_simulations",
		Prompt:     workflowprompt.PromptSerpSimulationV1,
		Schema:     chain.SerpSimulationSchema(),
		Vars: func(in wfmodel.SerpSimulationInput) map[string]any {
			return map[string]any{"keyword": in.Keyword, "draft_content": in.DraftContent}
		},
		Subject: func(in wfmodel.SerpSimulationInput) string {
			return fmt.Sprintf(`Failed to simulate SERP for "%s"`, in.Keyword)
		},
		Decode: DecodeSerpSimulation,
	}
	if store != nil {
		k.Persist = store.SaveSerpSimulation
	}
	return k
}

func ContentBriefKind(store *Store) Kind[wfmodel.ContentBriefInput, *wfmodel.ContentBrief] {
	k := Kind[wfmodel.ContentBriefInput, *wfmodel.ContentBrief]{
		Name:       "content_brief",
		Label:      "Brief",
		Collection: "content_briefs",
		Prompt:     workflowprompt.PromptContentBriefV1,
		Schema:     chain.ContentBriefSchema(),
		Vars: func(in wfmodel.ContentBriefInput) map[string]any {
			serp, err := wfnode.IndentedJSON(wfnode.BuildSerpSnapshot(in.Keyword))
			if err != nil {
				serp = "{}"
			}
			return map[string]any{"keyword": in.Keyword, "serp_data": serp}
		},
		Subject: func(in wfmodel.ContentBriefInput) string {
			return fmt.Sprintf(`Failed to generate brief for "%s"`, in.Keyword)
		},
		Decode: DecodeContentBrief,
	}
	if store != nil {
		k.Persist = store.SaveContentBrief
	}
	return k
}

// OutreachEmailKind 外联邮件按需生成，从不落库
func OutreachEmailKind() Kind[wfmodel.OutreachEmailInput, string] {
	return Kind[wfmodel.OutreachEmailInput, string]{
		Name:   "outreach_email",
		Label:  "Email",
		Prompt: workflowprompt.PromptOutreachEmailV1,
		Vars: func(in wfmodel.OutreachEmailInput) map[string]any {
			return map[string]any{
				"prospect_name":    in.ProspectName,
				"prospect_website": in.ProspectWebsite,
				"project_url":      in.ProjectURL,
			}
		},
		Subject: func(in wfmodel.OutreachEmailInput) string {
			return fmt.Sprintf(`Failed to generate email for "%s"`, in.ProspectName)
		},
		Decode: DecodeOutreachEmail,
	}
}
