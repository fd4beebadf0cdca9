package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

const defaultTimeout = 60 * time.Second

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GeminiGateway is a Gateway backed by the Gemini API SDK
type GeminiGateway struct {
	models          modelsClient
	model           string
	temperature     *float32
	maxOutputTokens int32
	timeout         time.Duration
	baseURL         string
}

// Option is a function that configures the gateway
type Option func(*GeminiGateway)

// WithModel sets the model used for every call
func WithModel(model string) Option {
	return func(g *GeminiGateway) {
		g.model = models.ModelFromName(model)
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) Option {
	return func(g *GeminiGateway) {
		g.temperature = genai.Ptr(float32(temperature))
	}
}

// WithMaxOutputTokens caps the reply length; zero leaves the model default
func WithMaxOutputTokens(n int) Option {
	return func(g *GeminiGateway) {
		if n > 0 {
			g.maxOutputTokens = int32(n)
		}
	}
}

// WithTimeout bounds each call when the caller's context has no deadline
func WithTimeout(timeout time.Duration) Option {
	return func(g *GeminiGateway) {
		g.timeout = timeout
	}
}

// WithBaseURL points the client at a different API endpoint
func WithBaseURL(url string) Option {
	return func(g *GeminiGateway) {
		g.baseURL = url
	}
}

// NewGeminiGateway creates a gateway for the Gemini API.
// The API key is passed to the SDK untouched; only its presence is checked.
func NewGeminiGateway(ctx context.Context, apiKey string, opts ...Option) (*GeminiGateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		slog.Debug("gemini_gateway_missing_key")
		return nil, apierrors.ErrMissingAPIKey
	}

	g := &GeminiGateway{
		model:   models.DefaultModel,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = g.baseURL
	}

	client, err := newGenAIClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.models = client.Models

	slog.Debug("gemini_gateway_ready",
		"model", g.model,
		"timeout", g.timeout,
	)
	return g, nil
}

// Model returns the model name used for calls
func (g *GeminiGateway) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the visible reply
// text. Every failure is returned as *errors.GatewayError.
func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apierrors.NewGatewayError(0, "", apierrors.ErrEmptyPrompt)
	}

	callCtx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := g.models.GenerateContent(callCtx, g.model, genai.Text(prompt), g.generateConfig())
	if err != nil {
		gwErr := wrapError(err)
		slog.Warn("gemini_generate_failed",
			"model", g.model,
			"status", gwErr.StatusCode,
			"elapsed", time.Since(start),
			"error", err,
		)
		return "", gwErr
	}

	text := extractVisibleText(resp)
	if text == "" {
		gwErr := emptyResponseError(resp)
		slog.Warn("gemini_empty_response", "model", g.model, "reason", gwErr.Message)
		return "", gwErr
	}

	slog.Debug("gemini_generate_ok",
		"model", g.model,
		"elapsed", time.Since(start),
		"chars", len(text),
	)
	return text, nil
}

func (g *GeminiGateway) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: g.temperature,
	}
	if g.maxOutputTokens > 0 {
		cfg.MaxOutputTokens = g.maxOutputTokens
	}
	return cfg
}

func (g *GeminiGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline || g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// wrapError converts SDK and transport errors into a GatewayError
func wrapError(err error) *apierrors.GatewayError {
	var gwErr *apierrors.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apierrors.NewGatewayError(apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apierrors.NewGatewayError(apiErrPtr.Code, apiErrPtr.Message, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewGatewayError(0, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return apierrors.NewGatewayError(0, "request canceled", err)
	}

	return apierrors.NewGatewayError(0, err.Error(), err)
}

// emptyResponseError explains why a response carried no usable text
func emptyResponseError(resp *genai.GenerateContentResponse) *apierrors.GatewayError {
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return apierrors.NewGatewayError(0, "prompt blocked: "+string(resp.PromptFeedback.BlockReason), apierrors.ErrEmptyResponse)
	}
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].FinishReason != "" {
		return apierrors.NewGatewayError(0, "finished without text: "+string(resp.Candidates[0].FinishReason), apierrors.ErrEmptyResponse)
	}
	return apierrors.NewGatewayError(0, "", apierrors.ErrEmptyResponse)
}

// extractVisibleText concatenates the non-thought text parts of the first
// candidate.
func extractVisibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// Ensure interface compliance
var _ Gateway = (*GeminiGateway)(nil)
