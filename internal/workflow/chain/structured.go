package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "seo-flow-api/internal/domain/service"
	wfmodel "seo-flow-api/internal/workflow/model"
	wfnode "seo-flow-api/internal/workflow/node"
	workflowport "seo-flow-api/internal/workflow/port"
	"seo-flow-api/pkg/logger"
)

// Schema 结构化输出的 JSON Schema 描述
type Schema struct {
	Name       string
	Definition map[string]any
}

// Request 一次结构化生成请求
type Request struct {
	Workflow string
	Provider string
	Model    string
	Messages []*schema.Message
	// Schema 为空时按纯文本生成
	Schema *Schema
}

// Response 模型原始输出
type Response struct {
	Text  string
	Usage wfmodel.LLMUsageMeta
}

// StructuredChain 按 schema 约束调用 ChatModel，不做重试
type StructuredChain struct {
	factory workflowport.ChatModelFactory
	now     func() time.Time

	chainOnce sync.Once
	chain     compose.Runnable[*structuredState, *structuredState]
	chainErr  error
}

func NewStructuredChain(factory workflowport.ChatModelFactory) *StructuredChain {
	return &StructuredChain{factory: factory, now: time.Now}
}

type structuredState struct {
	Req   *Request
	Model model.BaseChatModel

	OutMsg *schema.Message
	// Err 保留模型返回的原始错误，不经过 compose 包装
	Err  error
	Resp *Response
}

// Generate 解析模型后执行链路
// 模型解析失败（例如未配置凭证）时直接返回，不发起任何网络请求
func (c *StructuredChain) Generate(ctx context.Context, req *Request) (*Response, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}

	provider := strings.TrimSpace(req.Provider)
	ctx = llmctx.WithWorkflowProvider(ctx, req.Workflow, provider)
	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		return nil, err
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	st, err := chain.Invoke(ctx, &structuredState{Req: req, Model: chatModel})
	if err != nil {
		return nil, err
	}
	if st.Err != nil {
		return nil, st.Err
	}
	return st.Resp, nil
}

func (c *StructuredChain) getChain() (compose.Runnable[*structuredState, *structuredState], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *StructuredChain) buildChain(ctx context.Context) (compose.Runnable[*structuredState, *structuredState], error) {
	chain := compose.NewChain[*structuredState, *structuredState]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *structuredState) (*structuredState, error) {
			if st == nil || st.Req == nil || st.Model == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if len(st.Req.Messages) == 0 {
				return nil, fmt.Errorf("no prompt messages")
			}
			return st, nil
		}),
		compose.WithNodeName("structured.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *structuredState) (*structuredState, error) {
			req := st.Req
			outMsg, err := st.Model.Generate(ctx, req.Messages, buildModelOptions(req, req.Schema != nil)...)
			if err != nil && req.Schema != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"workflow", req.Workflow,
					"provider", req.Provider,
					"error", err.Error(),
				)
				outMsg, err = st.Model.Generate(ctx, req.Messages, buildModelOptions(req, false)...)
			}
			if err == nil && outMsg == nil {
				err = fmt.Errorf("empty llm response")
			}
			st.OutMsg, st.Err = outMsg, err
			return st, nil
		}),
		compose.WithNodeName("structured.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *structuredState) (*structuredState, error) {
			if st.Err != nil {
				return st, nil
			}
			usage := wfmodel.LLMUsageMeta{
				Provider:    st.Req.Provider,
				Model:       st.Req.Model,
				GeneratedAt: c.now().UTC(),
			}
			if st.OutMsg.ResponseMeta != nil && st.OutMsg.ResponseMeta.Usage != nil {
				usage.PromptTokens = st.OutMsg.ResponseMeta.Usage.PromptTokens
				usage.CompletionTokens = st.OutMsg.ResponseMeta.Usage.CompletionTokens
			}
			st.Resp = &Response{Text: st.OutMsg.Content, Usage: usage}
			return st, nil
		}),
		compose.WithNodeName("structured.finalize"),
	)

	return chain.Compile(ctx)
}

func buildModelOptions(req *Request, enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 2)
	if m := strings.TrimSpace(req.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	if enableSchema && req.Schema != nil {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   req.Schema.Name,
					"strict": false,
					"schema": req.Schema.Definition,
				},
			},
		}))
	}
	return opts
}
