package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	wfmodel "seo-flow-api/internal/workflow/model"
	wfnode "seo-flow-api/internal/workflow/node"
)

// fieldCheck 对顶层字段做最小结构校验
type fieldCheck func(fields map[string]json.RawMessage) error

// requireArray 字段存在且为 JSON 数组
func requireArray(name string) fieldCheck {
	return func(fields map[string]json.RawMessage) error {
		raw, ok := fields[name]
		if !ok {
			return fmt.Errorf("%w: missing %s", errInvalidResponse, name)
		}
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			return fmt.Errorf("%w: %s must be an array", errInvalidResponse, name)
		}
		return nil
	}
}

// requirePresent 字段存在且非空（null 与空字符串视为缺失）
func requirePresent(name string) fieldCheck {
	return func(fields map[string]json.RawMessage) error {
		raw, ok := fields[name]
		if !ok {
			return fmt.Errorf("%w: missing %s", errInvalidResponse, name)
		}
		switch string(bytes.TrimSpace(raw)) {
		case "null", `""`:
			return fmt.Errorf("%w: empty %s", errInvalidResponse, name)
		}
		return nil
	}
}

// decodeInto 截取第一个 JSON 值，校验必填字段后解码为类型化结果
// 必填字段之外缺失的字段保持零值
func decodeInto[T any](text string, checks ...fieldCheck) (*T, error) {
	raw := wfnode.ExtractJSONObject(text)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", errInvalidResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidResponse, err)
	}
	for _, check := range checks {
		if err := check(fields); err != nil {
			return nil, err
		}
	}

	out := new(T)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidResponse, err)
	}
	return out, nil
}

func DecodeTechnicalAudit(text string) (*wfmodel.TechnicalAuditResult, error) {
	out, err := decodeInto[wfmodel.TechnicalAuditResult](text, requireArray("audit_results"))
	if err != nil {
		return nil, err
	}
	for _, category := range out.AuditResults {
		for _, check := range category.Checks {
			if !check.Status.Valid() {
				return nil, fmt.Errorf("%w: check %q has unknown status %q", errInvalidResponse, check.CheckName, check.Status)
			}
		}
	}
	return out, nil
}

func DecodeSiteAudit(text string) (*wfmodel.SiteAuditResult, error) {
	out, err := decodeInto[wfmodel.SiteAuditResult](text, requirePresent("audit_summary"), requireArray("findings"))
	if err != nil {
		return nil, err
	}
	score := out.AuditSummary.OverallHealthScore
	if score < wfmodel.MinHealthScore || score > wfmodel.MaxHealthScore {
		return nil, fmt.Errorf("%w: overall_health_score %d out of range", errInvalidResponse, score)
	}
	for _, finding := range out.Findings {
		if !finding.Severity.Valid() {
			return nil, fmt.Errorf("%w: finding %q has unknown severity %q", errInvalidResponse, finding.IssueID, finding.Severity)
		}
	}
	return out, nil
}

func DecodeSerpSimulation(text string) (*wfmodel.SerpSimulationResult, error) {
	return decodeInto[wfmodel.SerpSimulationResult](text, requirePresent("predicted_rank"), requireArray("recommendations"))
}

func DecodeContentBrief(text string) (*wfmodel.ContentBrief, error) {
	return decodeInto[wfmodel.ContentBrief](text, requirePresent("target_keyword"), requireArray("recommended_structure"))
}

// DecodeOutreachEmail 外联邮件为纯文本，去除首尾空白后不能为空
func DecodeOutreachEmail(text string) (string, error) {
	email := strings.TrimSpace(text)
	if email == "" {
		return "", fmt.Errorf("%w: empty email", errInvalidResponse)
	}
	return email, nil
}
