package node

import (
	"bytes"
	"encoding/json"
	"strings"
)

// 全站审计与内容简报使用的合成上下文。
// 两者都是站点 URL 或关键词的纯函数，不做任何网络访问。

type crawlPage struct {
	URL                  string   `json:"url"`
	StatusCode           int      `json:"status_code"`
	TitleTag             string   `json:"title_tag"`
	MetaDescription      string   `json:"meta_description"`
	H1Tags               []string `json:"h1_tags"`
	H2Tags               []string `json:"h2_tags"`
	WordCount            int      `json:"word_count"`
	InternalLinksCount   int      `json:"internal_links_count"`
	ExternalLinksCount   int      `json:"external_links_count"`
	LoadTimeMs           int      `json:"load_time_ms"`
	HasSchema            bool     `json:"has_schema"`
	SchemaTypes          []string `json:"schema_types"`
	ImageCount           int      `json:"image_count"`
	ImagesMissingAltText int      `json:"images_missing_alt_text"`
	IsCanonicalized      bool     `json:"is_canonicalized"`
	CanonicalURL         string   `json:"canonical_url"`
}

type redirectChain struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Chain       []string `json:"chain"`
}

type errorSummary struct {
	NotFound       []string        `json:"404_errors"`
	ServerErrors   []string        `json:"5xx_errors"`
	RedirectChains []redirectChain `json:"redirect_chains"`
}

type coreWebVitals struct {
	LCPAverageMs    int     `json:"lcp_average_ms"`
	CLSAverageScore float64 `json:"cls_average_score"`
	FIDAverageMs    int     `json:"fid_average_ms"`
}

type searchQuery struct {
	Query       string `json:"query"`
	Clicks      int    `json:"clicks"`
	Impressions int    `json:"impressions"`
}

type searchPage struct {
	URL         string `json:"url"`
	Clicks      int    `json:"clicks"`
	Impressions int    `json:"impressions"`
}

type searchConsoleSummary struct {
	TopQueries    []searchQuery `json:"top_queries"`
	TopPages      []searchPage  `json:"top_pages"`
	ManualActions string        `json:"manual_actions"`
}

// CrawlSnapshot 全站审计的输入数据
type CrawlSnapshot struct {
	SiteURL              string               `json:"site_url"`
	CrawlData            []crawlPage          `json:"crawl_data"`
	ErrorSummary         errorSummary         `json:"error_summary"`
	CoreWebVitalsSummary coreWebVitals        `json:"core_web_vitals_summary"`
	GoogleSearchConsole  searchConsoleSummary `json:"google_search_console_summary"`
}

// BuildCrawlSnapshot 为站点生成确定性的爬取快照
func BuildCrawlSnapshot(siteURL string) CrawlSnapshot {
	u := siteURL
	return CrawlSnapshot{
		SiteURL: u,
		CrawlData: []crawlPage{
			{URL: u + "/", StatusCode: 200, TitleTag: "Welcome to AwesomeSite", MetaDescription: "The best site for awesome things.", H1Tags: []string{"Welcome!"}, H2Tags: []string{"Our Services", "About Us"}, WordCount: 800, InternalLinksCount: 25, ExternalLinksCount: 2, LoadTimeMs: 1200, HasSchema: true, SchemaTypes: []string{"Organization"}, ImageCount: 5, ImagesMissingAltText: 1, IsCanonicalized: true, CanonicalURL: u + "/"},
			{URL: u + "/about", StatusCode: 200, TitleTag: "About Us | AwesomeSite", MetaDescription: "", H1Tags: []string{"Our Story"}, H2Tags: []string{"Our Team", "Our Mission"}, WordCount: 450, InternalLinksCount: 10, ExternalLinksCount: 0, LoadTimeMs: 2100, HasSchema: false, SchemaTypes: []string{}, ImageCount: 3, ImagesMissingAltText: 2, IsCanonicalized: true, CanonicalURL: u + "/about"},
			{URL: u + "/blog/first-post", StatusCode: 200, TitleTag: "Our First Post", MetaDescription: "Our exciting first blog post about stuff.", H1Tags: []string{"Our First Post"}, H2Tags: []string{"Why we started", "What's next"}, WordCount: 1500, InternalLinksCount: 8, ExternalLinksCount: 3, LoadTimeMs: 900, HasSchema: true, SchemaTypes: []string{"Article"}, ImageCount: 2, ImagesMissingAltText: 0, IsCanonicalized: true, CanonicalURL: u + "/blog/first-post"},
			{URL: u + "/services", StatusCode: 200, TitleTag: "Services | AwesomeSite", MetaDescription: "Our services are the best.", H1Tags: []string{"What We Do"}, H2Tags: []string{"Service A", "Service B"}, WordCount: 300, InternalLinksCount: 5, ExternalLinksCount: 1, LoadTimeMs: 1800, HasSchema: false, SchemaTypes: []string{}, ImageCount: 0, ImagesMissingAltText: 0, IsCanonicalized: false, CanonicalURL: u + "/products"},
			{URL: u + "/old-page", StatusCode: 301, H1Tags: []string{}, H2Tags: []string{}, LoadTimeMs: 300, SchemaTypes: []string{}},
			{URL: u + "/broken-link", StatusCode: 404, TitleTag: "Not Found", H1Tags: []string{"404 Not Found"}, H2Tags: []string{}, WordCount: 50, InternalLinksCount: 1, LoadTimeMs: 450, SchemaTypes: []string{}},
		},
		ErrorSummary: errorSummary{
			NotFound:     []string{u + "/broken-link", u + "/another-missing-page"},
			ServerErrors: []string{},
			RedirectChains: []redirectChain{
				{Source: u + "/redirect-a", Destination: u + "/redirect-c", Chain: []string{u + "/redirect-b"}},
			},
		},
		CoreWebVitalsSummary: coreWebVitals{LCPAverageMs: 3100, CLSAverageScore: 0.21, FIDAverageMs: 150},
		GoogleSearchConsole: searchConsoleSummary{
			TopQueries: []searchQuery{
				{Query: "awesome things", Clicks: 800, Impressions: 15000},
				{Query: "awesomesite services", Clicks: 200, Impressions: 3000},
				{Query: "what is awesomesite", Clicks: 50, Impressions: 5000},
			},
			TopPages: []searchPage{
				{URL: u + "/", Clicks: 750, Impressions: 14000},
				{URL: u + "/services", Clicks: 150, Impressions: 2500},
			},
			ManualActions: "None",
		},
	}
}

type serpResult struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	TextContent string `json:"text_content"`
}

// SerpSnapshot 内容简报的输入数据
type SerpSnapshot struct {
	Keyword      string       `json:"keyword"`
	TopTenResult []serpResult `json:"top_10_results"`
}

// BuildSerpSnapshot 为关键词生成确定性的前十搜索结果
func BuildSerpSnapshot(keyword string) SerpSnapshot {
	k := keyword
	return SerpSnapshot{
		Keyword: k,
		TopTenResult: []serpResult{
			{Title: k + " - The Ultimate Guide", Snippet: "Everything you need to know about " + k + ". Our comprehensive guide covers all aspects...", TextContent: "The primary goal of this guide is to explain " + k + " in detail. We will cover its history, its applications, and future trends."},
			{Title: "What is " + k + "? Explained Simply", Snippet: "A simple explanation of " + k + " for beginners. Understand the core concepts quickly.", TextContent: "For beginners, " + k + " can seem complex. This article breaks it down into easy-to-understand parts. We focus on the 'what' and 'why'."},
			{Title: "Top 5 Benefits of Using " + k, Snippet: "Discover the main advantages of implementing " + k + " in your workflow.", TextContent: "Many people wonder about the benefits. This post outlines the top five advantages, including cost savings and efficiency."},
			{Title: "How to Get Started with " + k, Snippet: "A step-by-step tutorial on implementing " + k + " from scratch.", TextContent: "This tutorial provides a clear, step-by-step process. We cover installation, setup, and first use."},
			{Title: "Comparing " + k + " vs. Other Solutions", Snippet: "See how " + k + " stacks up against its main competitors in the market.", TextContent: "An in-depth comparison is crucial. We analyze features, pricing, and user reviews for " + k + " and its alternatives."},
			{Title: "Advanced Techniques for " + k, Snippet: "For experienced users, this article explores advanced strategies.", TextContent: "Once you master the basics, you can explore these advanced techniques to get the most out of " + k + "."},
			{Title: "Common " + k + " Mistakes to Avoid", Snippet: "Learn about common pitfalls when using " + k + " and how to prevent them.", TextContent: "Avoid these common mistakes. We've compiled a list of errors new users often make."},
			{Title: "Case Study: How We Improved ROI with " + k, Snippet: "A real-world case study showing the impact of " + k + ".", TextContent: "This case study demonstrates the real-world success achieved by using " + k + ", with specific metrics on ROI."},
			{Title: "The Future of " + k, Snippet: "Experts predict the future trends and evolution of " + k + ".", TextContent: "What does the future hold? We asked industry experts for their predictions on the evolution of " + k + "."},
			{Title: "Frequently Asked Questions about " + k, Snippet: "Get answers to the most common questions about " + k + ".", TextContent: "This FAQ section answers the top questions we receive, covering everything from pricing to technical support."},
		},
	}
}

// IndentedJSON 以两个空格缩进序列化上下文数据，不转义 HTML 字符
func IndentedJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
