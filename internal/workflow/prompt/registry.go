// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptTechnicalAuditV1 PromptID = "technical_audit_v1"
	PromptSiteAuditV1      PromptID = "site_audit_v1"
	PromptSerpSimulationV1 PromptID = "serp_simulation_v1"
	PromptContentBriefV1   PromptID = "content_brief_v1"
	PromptOutreachEmailV1  PromptID = "outreach_email_v1"
)

// promptFiles 模板文件，system 为空表示只有用户消息
var promptFiles = map[PromptID]struct{ system, user string }{
	PromptTechnicalAuditV1: {"", "templates/technical_audit_v1.user.txt"},
	PromptSiteAuditV1:      {"templates/site_audit_v1.system.txt", "templates/site_audit_v1.user.txt"},
	PromptSerpSimulationV1: {"templates/serp_simulation_v1.system.txt", "templates/serp_simulation_v1.user.txt"},
	PromptContentBriefV1:   {"templates/content_brief_v1.system.txt", "templates/content_brief_v1.user.txt"},
	PromptOutreachEmailV1:  {"templates/outreach_email_v1.system.txt", "templates/outreach_email_v1.user.txt"},
}

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

// ChatTemplate 返回指定 ID 的聊天模板，首次加载后缓存
func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	files, ok := promptFiles[id]
	if !ok {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}

	msgs := make([]schema.MessagesTemplate, 0, 2)
	if files.system != "" {
		system, err := readEmbeddedText(files.system)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, schema.SystemMessage(system))
	}
	user, err := readEmbeddedText(files.user)
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, schema.UserMessage(user))

	tpl := einoprompt.FromMessages(schema.FString, msgs...)
	r.cache[id] = tpl
	return tpl, nil
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
