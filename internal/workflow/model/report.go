package model

// CheckStatus 技术审计检查结果
type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckWarn CheckStatus = "WARN"
	CheckFail CheckStatus = "FAIL"
)

func (s CheckStatus) Valid() bool {
	switch s {
	case CheckPass, CheckWarn, CheckFail:
		return true
	}
	return false
}

// AuditCheck 单项检查
type AuditCheck struct {
	CheckName      string      `json:"check_name"`
	Status         CheckStatus `json:"status"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
}

// AuditCategory 审计分类
type AuditCategory struct {
	CategoryName string       `json:"category_name"`
	Checks       []AuditCheck `json:"checks"`
}

// TechnicalAuditResult 单页技术审计结果
type TechnicalAuditResult struct {
	AuditResults []AuditCategory `json:"audit_results"`
}

// Severity 全站审计问题等级
type Severity string

const (
	SeverityLow         Severity = "Low"
	SeverityMedium      Severity = "Medium"
	SeverityHigh        Severity = "High"
	SeverityCritical    Severity = "Critical"
	SeverityOpportunity Severity = "Opportunity"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical, SeverityOpportunity:
		return true
	}
	return false
}

// 健康分取值区间
const (
	MinHealthScore = 0
	MaxHealthScore = 100
)

// SiteAuditSummary 全站审计摘要
type SiteAuditSummary struct {
	SiteURL            string `json:"site_url"`
	OverallHealthScore int    `json:"overall_health_score"`
	ExecutiveSummary   string `json:"executive_summary"`
}

// SiteAuditFinding 全站审计发现的问题
type SiteAuditFinding struct {
	IssueID           string   `json:"issue_id"`
	Category          string   `json:"category"`
	Title             string   `json:"title"`
	Severity          Severity `json:"severity"`
	Description       string   `json:"description"`
	BusinessImpact    string   `json:"business_impact"`
	AffectedURLs      []string `json:"affected_urls"`
	RecommendedAction string   `json:"recommended_action"`
}

// SiteAuditResult 全站审计结果
type SiteAuditResult struct {
	AuditSummary *SiteAuditSummary  `json:"audit_summary"`
	Findings     []SiteAuditFinding `json:"findings"`
}

// SerpSimulationResult SERP 排名模拟结果
type SerpSimulationResult struct {
	PredictedRank   string   `json:"predicted_rank"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// HeadingGroup 一个 H2 及其下属 H3
type HeadingGroup struct {
	H2  string   `json:"h2"`
	H3s []string `json:"h3s"`
}

// ContentBrief 内容简报
type ContentBrief struct {
	TargetKeyword        string         `json:"target_keyword"`
	UserIntent           string         `json:"user_intent"`
	RecommendedStructure []HeadingGroup `json:"recommended_structure"`
	KeyEntities          []string       `json:"key_entities"`
	PeopleAlsoAsk        []string       `json:"people_also_ask"`
}

// TechnicalAuditInput 技术审计输入
type TechnicalAuditInput struct {
	URL string
}

// SiteAuditInput 全站审计输入
type SiteAuditInput struct {
	SiteURL string
}

// SerpSimulationInput SERP 模拟输入
type SerpSimulationInput struct {
	Keyword      string
	DraftContent string
}

// ContentBriefInput 内容简报输入
type ContentBriefInput struct {
	Keyword string
}

// OutreachEmailInput 外联邮件输入
type OutreachEmailInput struct {
	ProspectName    string
	ProspectWebsite string
	ProjectURL      string
}
