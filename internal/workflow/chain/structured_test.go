package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-flow-api/internal/workflow/port"
)

type fakeChatModel struct {
	replies []*schema.Message
	errs    []error
	calls   int
}

func (m *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	i := m.calls
	m.calls++
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(m.replies) {
		return m.replies[i], nil
	}
	return m.replies[len(m.replies)-1], nil
}

func (m *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

type fakeFactory struct {
	model model.BaseChatModel
	err   error
	gets  int
}

func (f *fakeFactory) Get(context.Context, string) (model.BaseChatModel, error) {
	f.gets++
	return f.model, f.err
}

func testRequest(s *Schema) *Request {
	return &Request{
		Workflow: "serp_simulation",
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		Messages: []*schema.Message{schema.UserMessage("KEYWORD: \"go\"")},
		Schema:   s,
	}
}

func TestStructuredChain_ReturnsTextAndUsage(t *testing.T) {
	reply := schema.AssistantMessage(`{"predicted_rank":"8-12"}`, nil)
	reply.ResponseMeta = &schema.ResponseMeta{Usage: &schema.TokenUsage{PromptTokens: 12, CompletionTokens: 34}}
	m := &fakeChatModel{replies: []*schema.Message{reply}}

	c := NewStructuredChain(&fakeFactory{model: m})
	resp, err := c.Generate(context.Background(), testRequest(SerpSimulationSchema()))
	require.NoError(t, err)

	assert.Equal(t, `{"predicted_rank":"8-12"}`, resp.Text)
	assert.Equal(t, 12, resp.Usage.PromptTokens)
	assert.Equal(t, 34, resp.Usage.CompletionTokens)
	assert.Equal(t, "gemini-2.5-flash", resp.Usage.Model)
	assert.Equal(t, 1, m.calls)
}

func TestStructuredChain_NotConfiguredSkipsModel(t *testing.T) {
	f := &fakeFactory{err: fmt.Errorf("%w: gemini", port.ErrProviderNotConfigured)}
	c := NewStructuredChain(f)

	_, err := c.Generate(context.Background(), testRequest(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrProviderNotConfigured)
	assert.Equal(t, 1, f.gets)
}

func TestStructuredChain_TransportErrorIsVerbatim(t *testing.T) {
	m := &fakeChatModel{errs: []error{errors.New("429 quota exceeded")}}
	c := NewStructuredChain(&fakeFactory{model: m})

	_, err := c.Generate(context.Background(), testRequest(ContentBriefSchema()))
	require.Error(t, err)
	assert.Equal(t, "429 quota exceeded", err.Error())
	assert.Equal(t, 1, m.calls)
}

func TestStructuredChain_FallsBackWhenResponseFormatRejected(t *testing.T) {
	m := &fakeChatModel{
		errs:    []error{errors.New("unsupported parameter: response_format"), nil},
		replies: []*schema.Message{nil, schema.AssistantMessage("{}", nil)},
	}
	c := NewStructuredChain(&fakeFactory{model: m})

	resp, err := c.Generate(context.Background(), testRequest(TechnicalAuditSchema()))
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Text)
	assert.Equal(t, 2, m.calls)
}

func TestStructuredChain_NonFormatErrorsAreNotResent(t *testing.T) {
	for _, msg := range []string{
		"error, status code: 400, message: API key not valid. Please pass a valid API key. (invalid request, see response body)",
		"failed to parse upstream body: unexpected EOF",
	} {
		m := &fakeChatModel{errs: []error{errors.New(msg)}}
		c := NewStructuredChain(&fakeFactory{model: m})

		_, err := c.Generate(context.Background(), testRequest(SiteAuditSchema()))
		require.Error(t, err, msg)
		assert.Equal(t, msg, err.Error())
		assert.Equal(t, 1, m.calls, msg)
	}
}

func TestStructuredChain_PlainTextDoesNotFallBack(t *testing.T) {
	m := &fakeChatModel{errs: []error{errors.New("invalid response_format")}}
	c := NewStructuredChain(&fakeFactory{model: m})

	_, err := c.Generate(context.Background(), testRequest(nil))
	require.Error(t, err)
	assert.Equal(t, 1, m.calls)
}

func TestStructuredChain_EmptyMessages(t *testing.T) {
	c := NewStructuredChain(&fakeFactory{model: &fakeChatModel{}})
	req := testRequest(nil)
	req.Messages = nil

	_, err := c.Generate(context.Background(), req)
	assert.Error(t, err)
}

func TestSchemasDeclareRequiredFields(t *testing.T) {
	cases := map[*Schema][]any{
		TechnicalAuditSchema(): {"audit_results"},
		SiteAuditSchema():      {"audit_summary", "findings"},
		SerpSimulationSchema(): {"predicted_rank", "strengths", "weaknesses", "recommendations"},
		ContentBriefSchema():   {"target_keyword", "user_intent", "recommended_structure", "key_entities", "people_also_ask"},
	}
	for s, required := range cases {
		assert.Equal(t, "object", s.Definition["type"], s.Name)
		assert.Equal(t, required, s.Definition["required"], s.Name)
	}
}
