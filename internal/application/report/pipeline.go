// Package report 实现类型化的 AI 报告流水线：模板 -> 结构化生成 -> 校验 -> 落库
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	llmctx "seo-flow-api/internal/domain/service"
	"seo-flow-api/internal/workflow/chain"
	workflowport "seo-flow-api/internal/workflow/port"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
	"seo-flow-api/pkg/logger"
	"seo-flow-api/pkg/metrics"
)

// Generator 结构化生成端口，由 chain.StructuredChain 实现
type Generator interface {
	Generate(ctx context.Context, req *chain.Request) (*chain.Response, error)
}

// Identity 显式传入的调用方身份与所属项目
type Identity struct {
	UserID    string
	ProjectID string
}

func (i Identity) resolved() bool {
	return strings.TrimSpace(i.UserID) != ""
}

// Kind 一类报告的完整配置
type Kind[In, T any] struct {
	// Name 报告类型，用于日志、指标和 LLM 工作流标签
	Name string
	// Label 保存失败提示的前缀，例如 "Audit"
	Label string
	// Collection 目标表名，空表示结果不落库
	Collection string

	Prompt workflowprompt.PromptID
	Schema *chain.Schema
	Vars   func(in In) map[string]any
	// Subject 错误信息前缀，例如 `Failed to audit "https://example.com"`
	Subject func(in In) string
	Decode  func(text string) (T, error)
	Persist func(ctx context.Context, id Identity, in In, result T) (string, error)
}

// Outcome 一次成功运行的结果
// Warning 非空表示结果已生成但未能保存
type Outcome[T any] struct {
	Result   T
	State    State
	RecordID string
	Warning  *PipelineError
}

// Pipeline 泛型报告流水线，实例之间不共享运行时状态
type Pipeline[In, T any] struct {
	kind      Kind[In, T]
	generator Generator
	prompts   *workflowprompt.Registry
	provider  string
	model     string
}

// NewPipeline 创建报告流水线
func NewPipeline[In, T any](kind Kind[In, T], generator Generator, prompts *workflowprompt.Registry, provider, model string) *Pipeline[In, T] {
	return &Pipeline[In, T]{
		kind:      kind,
		generator: generator,
		prompts:   prompts,
		provider:  provider,
		model:     model,
	}
}

// run 单次调用的状态跟踪
type run struct {
	kind  string
	state State
}

func (r *run) advance(ctx context.Context, to State) {
	if !canTransition(r.state, to) {
		// 迁移表与流水线代码不一致属于编程错误
		panic(fmt.Sprintf("report %s: invalid transition %s -> %s", r.kind, r.state, to))
	}
	logger.Debug(ctx, "report pipeline transition", "from", string(r.state), "to", string(to))
	r.state = to
}

// Run 顺序执行一次流水线
// 生成失败或校验失败返回 *PipelineError；保存失败作为 Outcome.Warning 返回
func (p *Pipeline[In, T]) Run(ctx context.Context, id Identity, in In) (*Outcome[T], error) {
	start := time.Now()
	ctx = logger.WithContext(ctx, logger.ReportKindKey, p.kind.Name)
	ctx = llmctx.WithUser(ctx, id.UserID)
	r := &run{kind: p.kind.Name, state: StateIdle}
	defer func() {
		metrics.ReportPipelineTotal.WithLabelValues(p.kind.Name, string(r.state)).Inc()
		metrics.ReportPipelineDuration.WithLabelValues(p.kind.Name).Observe(time.Since(start).Seconds())
	}()

	subject := p.kind.Subject(in)

	r.advance(ctx, StateComposing)
	msgs, err := p.compose(ctx, in)
	if err != nil {
		r.advance(ctx, StateGenerationFailed)
		return nil, p.fail(ctx, newPipelineError(KindInternal, err, "%s: failed to build prompt", subject))
	}

	r.advance(ctx, StateGenerating)
	resp, err := p.generator.Generate(ctx, &chain.Request{
		Workflow: p.kind.Name,
		Provider: p.provider,
		Model:    p.model,
		Messages: msgs,
		Schema:   p.kind.Schema,
	})
	if err != nil {
		r.advance(ctx, StateGenerationFailed)
		if errors.Is(err, workflowport.ErrProviderNotConfigured) {
			return nil, p.fail(ctx, newPipelineError(KindConfiguration, err, "%s", configurationMessage))
		}
		return nil, p.fail(ctx, newPipelineError(KindTransport, err, "%s: %s", subject, err.Error()))
	}

	r.advance(ctx, StateValidating)
	result, err := p.kind.Decode(resp.Text)
	if err != nil {
		r.advance(ctx, StateInvalid)
		return nil, p.fail(ctx, newPipelineError(KindValidation, err, "%s: %s", subject, invalidResponseMessage))
	}

	r.advance(ctx, StateValid)
	out := &Outcome[T]{Result: result, State: StateValid}
	if p.kind.Persist == nil {
		return out, nil
	}

	r.advance(ctx, StatePersisting)
	if !id.resolved() {
		r.advance(ctx, StatePersistFailed)
		out.State = r.state
		out.Warning = newPipelineError(KindAuthentication, errUnauthenticated, "%s", unauthenticatedMessage)
		p.warn(ctx, out.Warning)
		return out, nil
	}

	recordID, err := p.kind.Persist(ctx, id, in, result)
	if err != nil {
		r.advance(ctx, StatePersistFailed)
		metrics.ReportPersistFailures.WithLabelValues(p.kind.Collection).Inc()
		out.State = r.state
		out.Warning = newPipelineError(KindPersistence, err, "%s complete, but failed to save result: %s", p.kind.Label, err.Error())
		p.warn(ctx, out.Warning)
		return out, nil
	}

	r.advance(ctx, StatePersisted)
	out.State = r.state
	out.RecordID = recordID
	return out, nil
}

func (p *Pipeline[In, T]) compose(ctx context.Context, in In) ([]*schema.Message, error) {
	tpl, err := p.prompts.ChatTemplate(p.kind.Prompt)
	if err != nil {
		return nil, err
	}
	return tpl.Format(ctx, p.kind.Vars(in))
}

func (p *Pipeline[In, T]) fail(ctx context.Context, pe *PipelineError) *PipelineError {
	logger.Error(ctx, "report pipeline failed", pe.Err, "error_kind", string(pe.Kind))
	return pe
}

func (p *Pipeline[In, T]) warn(ctx context.Context, pe *PipelineError) {
	logger.Warn(ctx, "report generated but not saved",
		"collection", p.kind.Collection,
		"error_kind", string(pe.Kind),
		"error", pe.Message,
	)
}
