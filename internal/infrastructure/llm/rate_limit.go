package llm

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"seo-flow-api/pkg/metrics"
)

// rateLimitedChatModel 在每次出站调用前等待限速令牌
type rateLimitedChatModel struct {
	inner    model.BaseChatModel
	limiter  *rate.Limiter
	provider string
}

func (m *rateLimitedChatModel) wait(ctx context.Context) error {
	start := time.Now()
	err := m.limiter.Wait(ctx)
	metrics.LLMRateLimitWait.WithLabelValues(m.provider).Observe(time.Since(start).Seconds())
	return err
}

func (m *rateLimitedChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.Generate(ctx, input, opts...)
}

func (m *rateLimitedChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.Stream(ctx, input, opts...)
}

// IsCallbacksEnabled 透传内层模型的回调能力，避免重复上报
func (m *rateLimitedChatModel) IsCallbacksEnabled() bool {
	if c, ok := m.inner.(components.Checker); ok {
		return c.IsCallbacksEnabled()
	}
	return false
}

func (m *rateLimitedChatModel) GetType() string {
	if t, ok := m.inner.(components.Typer); ok {
		return t.GetType()
	}
	return "RateLimitedChatModel"
}
