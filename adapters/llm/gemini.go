package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/yoonjw/maumlog/domain/repositories"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultTimeoutSeconds = 30
)

// Gemini implements repositories.TextGenerator using Google's Gemini
// API. Every call is synchronous and bounded by a fixed timeout; the
// caller decides what goroutine to run it on.
type Gemini struct {
	client         *genai.Client
	logger         *zap.Logger
	model          string
	timeoutSeconds int
}

// NewGemini creates a Gemini text generator. A missing API key fails
// fast, before any network attempt.
func NewGemini(apiKey string, logger *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, repositories.ErrNoAPIKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client:         client,
		logger:         logger,
		model:          defaultModel,
		timeoutSeconds: defaultTimeoutSeconds,
	}, nil
}

// Generate sends the prompt and returns the model's reply text.
// Authorization failures and rate limiting surface as the dedicated
// sentinel errors so callers can display them verbatim. The core does
// not retry; retry policy belongs to the caller.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		return "", g.classify(err)
	}

	text := responseText(response)
	if text == "" {
		return "", repositories.ErrEmptyReply
	}
	return text, nil
}

// classify maps transport failures onto the domain's error taxonomy.
func (g *Gemini) classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		g.logger.Error("Gemini API call failed",
			zap.Int("code", apiErr.Code),
			zap.String("status", apiErr.Status))
		switch apiErr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("API 호출 실패 (코드: %d): %w", apiErr.Code, repositories.ErrUnauthorized)
		case http.StatusTooManyRequests:
			return fmt.Errorf("API 호출 실패 (코드: %d): %w", apiErr.Code, repositories.ErrRateLimited)
		}
		return fmt.Errorf("API 호출 실패 (코드: %d): %s", apiErr.Code, apiErr.Message)
	}
	g.logger.Error("Gemini API call failed", zap.Error(err))
	return fmt.Errorf("API 호출 실패: %w", err)
}

// responseText concatenates the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

var _ repositories.TextGenerator = (*Gemini)(nil)
