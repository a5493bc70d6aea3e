// Package llm 管理 Eino ChatModel 客户端
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"golang.org/x/time/rate"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/workflow/port"
)

// chatModelBuilder 根据提供商配置创建 ChatModel
type chatModelBuilder func(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config  *config.LLMConfig
	models  map[string]model.BaseChatModel
	limiter *rate.Limiter
	build   chatModelBuilder
	mu      sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config:  &cfg.LLM,
		models:  make(map[string]model.BaseChatModel),
		limiter: newLimiter(cfg.LLM.RequestsPerMinute),
		build:   newOpenAIChatModel,
	}
}

// newLimiter 每分钟 n 次的出站限速，n <= 0 时不限速
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
// 提供商缺少 API Key 时返回 port.ErrProviderNotConfigured，不创建客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: provider %s not found in LLM config", port.ErrProviderNotConfigured, name)
	}
	if strings.TrimSpace(providerCfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: %s", port.ErrProviderNotConfigured, name)
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	chatModel, err := f.build(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}
	if f.limiter != nil {
		chatModel = &rateLimitedChatModel{inner: chatModel, limiter: f.limiter, provider: name}
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default 返回默认 ChatModel
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

func newOpenAIChatModel(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	mcfg := &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
	if cfg.MaxTokens > 0 {
		mcfg.MaxTokens = &cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		mcfg.Temperature = ptrFloat32(float32(cfg.Temperature))
	}
	return openai.NewChatModel(ctx, mcfg)
}

func ptrFloat32(f float32) *float32 {
	return &f
}
