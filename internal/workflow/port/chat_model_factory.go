package port

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
)

// ErrProviderNotConfigured 提供商缺少可用凭证，在发起任何网络请求前返回
var ErrProviderNotConfigured = errors.New("llm provider not configured")

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}
