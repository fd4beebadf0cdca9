package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

type stubModelsClient struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
	gotDeadline bool
	calls       int
}

func (s *stubModelsClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.gotModel = model
	s.gotContents = contents
	s.gotConfig = cfg
	_, s.gotDeadline = ctx.Deadline()
	return s.resp, s.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  genai.RoleModel,
					Parts: parts,
				},
			},
		},
	}
}

func newTestGateway(stub *stubModelsClient, opts ...Option) *GeminiGateway {
	g := &GeminiGateway{
		models:  stub,
		model:   models.DefaultModel,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func TestNewGeminiGateway_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGateway(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apierrors.IsMissingAPIKey(err))
}

func TestNewGeminiGateway_ClientConfig(t *testing.T) {
	origNewClient := newGenAIClient
	defer func() {
		newGenAIClient = origNewClient
	}()

	var gotCfg *genai.ClientConfig
	newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		gotCfg = cfg
		return &genai.Client{}, nil
	}

	g, err := NewGeminiGateway(context.Background(), " secret-key ",
		WithModel("pro"),
		WithBaseURL("http://localhost:9999/"),
	)
	require.NoError(t, err)
	require.NotNil(t, gotCfg)

	assert.Equal(t, "secret-key", gotCfg.APIKey)
	assert.Equal(t, genai.BackendGeminiAPI, gotCfg.Backend)
	assert.Equal(t, "http://localhost:9999/", gotCfg.HTTPOptions.BaseURL)
	assert.Equal(t, models.Model25Pro, g.Model())
	assert.Equal(t, defaultTimeout, g.timeout)
}

func TestNewGeminiGateway_ClientError(t *testing.T) {
	origNewClient := newGenAIClient
	defer func() {
		newGenAIClient = origNewClient
	}()

	newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		return nil, errors.New("no network")
	}

	_, err := NewGeminiGateway(context.Background(), "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no network")
}

func TestGenerate_Success(t *testing.T) {
	stub := &stubModelsClient{resp: textResponse(&genai.Part{Text: "Hello "}, &genai.Part{Text: "there"})}
	g := newTestGateway(stub, WithTemperature(0.5), WithMaxOutputTokens(256))

	text, err := g.Generate(context.Background(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)

	assert.Equal(t, models.DefaultModel, stub.gotModel)
	require.Len(t, stub.gotContents, 1)
	require.Len(t, stub.gotContents[0].Parts, 1)
	assert.Equal(t, "Hi", stub.gotContents[0].Parts[0].Text)
	assert.Equal(t, genai.RoleUser, stub.gotContents[0].Role)

	require.NotNil(t, stub.gotConfig.Temperature)
	assert.InDelta(t, 0.5, *stub.gotConfig.Temperature, 1e-6)
	assert.Equal(t, int32(256), stub.gotConfig.MaxOutputTokens)
	assert.True(t, stub.gotDeadline, "call should be bounded by the default timeout")
}

func TestGenerate_KeepsAsterisks(t *testing.T) {
	// Sanitizing is the session's job; the gateway returns text verbatim.
	stub := &stubModelsClient{resp: textResponse(&genai.Part{Text: "**bold**"})}
	g := newTestGateway(stub)

	text, err := g.Generate(context.Background(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "**bold**", text)
}

func TestGenerate_SkipsThoughts(t *testing.T) {
	stub := &stubModelsClient{resp: textResponse(
		&genai.Part{Text: "planning...", Thought: true},
		nil,
		&genai.Part{Text: "answer"},
	)}
	g := newTestGateway(stub)

	text, err := g.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "answer", text)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	stub := &stubModelsClient{}
	g := newTestGateway(stub)

	_, err := g.Generate(context.Background(), "  \n ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierrors.ErrEmptyPrompt))
	assert.True(t, apierrors.IsGatewayError(err))
	assert.Equal(t, 0, stub.calls)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		stub       *stubModelsClient
		wantStatus int
		wantIs     error
		wantMsg    string
	}{
		{
			name:       "api error",
			stub:       &stubModelsClient{err: genai.APIError{Code: 429, Message: "Resource exhausted", Status: "RESOURCE_EXHAUSTED"}},
			wantStatus: 429,
			wantMsg:    "Resource exhausted",
		},
		{
			name:       "wrapped api error",
			stub:       &stubModelsClient{err: fmt.Errorf("call: %w", genai.APIError{Code: 403, Message: "API key not valid"})},
			wantStatus: 403,
			wantMsg:    "API key not valid",
		},
		{
			name:    "deadline",
			stub:    &stubModelsClient{err: context.DeadlineExceeded},
			wantIs:  context.DeadlineExceeded,
			wantMsg: "request timed out",
		},
		{
			name:    "transport",
			stub:    &stubModelsClient{err: errors.New("dial tcp: connection refused")},
			wantMsg: "dial tcp: connection refused",
		},
		{
			name:    "no candidates",
			stub:    &stubModelsClient{resp: &genai.GenerateContentResponse{}},
			wantIs:  apierrors.ErrEmptyResponse,
			wantMsg: "",
		},
		{
			name: "blocked prompt",
			stub: &stubModelsClient{resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReason("SAFETY")},
			}},
			wantIs:  apierrors.ErrEmptyResponse,
			wantMsg: "prompt blocked: SAFETY",
		},
		{
			name: "finished without text",
			stub: &stubModelsClient{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantIs:  apierrors.ErrEmptyResponse,
			wantMsg: "finished without text: SAFETY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(tt.stub)

			text, err := g.Generate(context.Background(), "Hi")
			require.Error(t, err)
			assert.Empty(t, text)

			var gwErr *apierrors.GatewayError
			require.True(t, errors.As(err, &gwErr), "expected GatewayError, got %T", err)
			assert.Equal(t, tt.wantStatus, gwErr.StatusCode)
			assert.Equal(t, tt.wantMsg, gwErr.Message)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			}
		})
	}
}

func TestGenerate_RespectsCallerDeadline(t *testing.T) {
	stub := &stubModelsClient{resp: textResponse(&genai.Part{Text: "ok"})}
	g := newTestGateway(stub, WithTimeout(0))

	_, err := g.Generate(context.Background(), "Hi")
	require.NoError(t, err)
	assert.False(t, stub.gotDeadline, "zero timeout should not add a deadline")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err = g.Generate(ctx, "Hi")
	require.NoError(t, err)
	assert.True(t, stub.gotDeadline)
}

func TestWithMaxOutputTokens_IgnoresZero(t *testing.T) {
	g := newTestGateway(&stubModelsClient{}, WithMaxOutputTokens(0))
	assert.Equal(t, int32(0), g.generateConfig().MaxOutputTokens)
	assert.Nil(t, g.generateConfig().Temperature)
}
