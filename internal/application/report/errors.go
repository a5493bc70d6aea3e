package report

import (
	"errors"
	"fmt"
)

// ErrorKind 流水线错误分类
type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration"
	KindTransport      ErrorKind = "transport"
	KindValidation     ErrorKind = "validation"
	KindPersistence    ErrorKind = "persistence"
	KindAuthentication ErrorKind = "authentication"
	// KindInternal 提示词模板缺失或渲染失败，属于服务端缺陷
	KindInternal ErrorKind = "internal"
)

const (
	configurationMessage   = "AI features are disabled because the Gemini API key is not configured."
	invalidResponseMessage = "Invalid response format from API."
	unauthenticatedMessage = "User not authenticated."
)

// errInvalidResponse 模型输出不满足最小结构约束
var errInvalidResponse = errors.New(invalidResponseMessage)

// errUnauthenticated 保存时缺少调用方身份
var errUnauthenticated = errors.New(unauthenticatedMessage)

// PipelineError 对外暴露的单条错误信息及其分类
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func newPipelineError(kind ErrorKind, err error, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsPipelineError 从错误链中取出 PipelineError
func AsPipelineError(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
