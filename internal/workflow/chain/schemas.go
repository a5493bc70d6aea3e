package chain

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": stringProp()}
}

func described(prop map[string]any, description string) map[string]any {
	prop["description"] = description
	return prop
}

// TechnicalAuditSchema 单页技术审计输出结构
func TechnicalAuditSchema() *Schema {
	return &Schema{
		Name: "technical_audit",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"audit_results"},
			"properties": map[string]any{
				"audit_results": map[string]any{
					"type":        "array",
					"description": "A list of SEO audit categories.",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"category_name", "checks"},
						"properties": map[string]any{
							"category_name": described(stringProp(), "The name of the audit category (e.g., 'On-Page SEO', 'Performance & Speed', 'Mobile Friendliness')."),
							"checks": map[string]any{
								"type":        "array",
								"description": "A list of specific checks within this category.",
								"items": map[string]any{
									"type":     "object",
									"required": []any{"check_name", "status", "description", "recommendation"},
									"properties": map[string]any{
										"check_name": described(stringProp(), "The specific item being checked (e.g., 'Title Tag Presence', 'Meta Description Length')."),
										"status": map[string]any{
											"type":        "string",
											"enum":        []any{"PASS", "FAIL", "WARN"},
											"description": "The result of the check.",
										},
										"description":    described(stringProp(), "A one-sentence explanation of the check's result for the given URL."),
										"recommendation": described(stringProp(), "A concrete, actionable recommendation to fix the issue if status is FAIL or WARN. If PASS, state what was done correctly."),
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// SiteAuditSchema 全站审计输出结构
func SiteAuditSchema() *Schema {
	return &Schema{
		Name: "site_audit",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"audit_summary", "findings"},
			"properties": map[string]any{
				"audit_summary": map[string]any{
					"type":     "object",
					"required": []any{"site_url", "overall_health_score", "executive_summary"},
					"properties": map[string]any{
						"site_url":             stringProp(),
						"overall_health_score": map[string]any{"type": "integer"},
						"executive_summary":    stringProp(),
					},
				},
				"findings": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"required": []any{
							"issue_id", "category", "title", "severity", "description",
							"business_impact", "affected_urls", "recommended_action",
						},
						"properties": map[string]any{
							"issue_id": stringProp(),
							"category": stringProp(),
							"title":    stringProp(),
							"severity": map[string]any{
								"type": "string",
								"enum": []any{"Low", "Medium", "High", "Critical", "Opportunity"},
							},
							"description":        stringProp(),
							"business_impact":    stringProp(),
							"affected_urls":      stringArray(),
							"recommended_action": stringProp(),
						},
					},
				},
			},
		},
	}
}

// SerpSimulationSchema SERP 排名模拟输出结构
func SerpSimulationSchema() *Schema {
	return &Schema{
		Name: "serp_simulation",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"predicted_rank", "strengths", "weaknesses", "recommendations"},
			"properties": map[string]any{
				"predicted_rank":  described(stringProp(), "The AI's predicted ranking position for the draft content (e.g., '8-12', 'Top 5')."),
				"strengths":       described(stringArray(), "A list of 2-3 key strengths of the draft content when compared to the likely competition."),
				"weaknesses":      described(stringArray(), "A list of 2-3 critical weaknesses or gaps in the draft content."),
				"recommendations": described(stringArray(), "A list of the top 3-5 most impactful, actionable recommendations to improve the content's ranking potential."),
			},
		},
	}
}

// ContentBriefSchema 内容简报输出结构
func ContentBriefSchema() *Schema {
	return &Schema{
		Name: "content_brief",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"target_keyword", "user_intent", "recommended_structure", "key_entities", "people_also_ask"},
			"properties": map[string]any{
				"target_keyword": stringProp(),
				"user_intent":    described(stringProp(), "A concise summary of what the user is most likely trying to accomplish by searching for this keyword."),
				"recommended_structure": map[string]any{
					"type":        "array",
					"description": "A logical article structure with H2s and corresponding H3s.",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"h2", "h3s"},
						"properties": map[string]any{
							"h2":  described(stringProp(), "The text for an H2 heading."),
							"h3s": described(stringArray(), "A list of H3 subheadings that fall under this H2."),
						},
					},
				},
				"key_entities":    described(stringArray(), "A list of important concepts, people, or places that should be mentioned in the article to demonstrate expertise."),
				"people_also_ask": described(stringArray(), "A list of common questions related to the keyword that should be answered in the content."),
			},
		},
	}
}
