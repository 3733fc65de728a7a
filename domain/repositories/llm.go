package repositories

import (
	"context"
	"errors"

	"github.com/yoonjw/maumlog/domain/entities"
)

// Configuration and input errors surfaced before any network attempt.
var (
	ErrEmptyText    = errors.New("분석할 텍스트가 비어있습니다")
	ErrNoAPIKey     = errors.New("API 키가 설정되지 않았습니다")
	ErrUnauthorized = errors.New("API 키가 올바르지 않거나 권한이 없습니다")
	ErrRateLimited  = errors.New("API 호출 한도를 초과했습니다")

	// ErrEmptyReply marks a structurally empty collaborator reply
	// (no candidates, no text parts). Annotators convert it into a
	// best-effort fallback instead of failing the caller.
	ErrEmptyReply = errors.New("API 응답에 결과가 없습니다")
)

// TextGenerator abstracts the analysis collaborator: plain prompt text
// in, plain reply text out. Transport belongs to the implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnnotateOptions carries the optional inputs of an annotation request.
type AnnotateOptions struct {
	// ConversationContext is a rendered trailing window of the
	// conversation; empty for single-message analysis.
	ConversationContext string
	// Persona is an optional MBTI hint about the counterpart.
	Persona entities.Persona
	// ContactName labels the counterpart on the produced message.
	ContactName string
}

// AnnotateResult is the outcome of one annotation. Message is always
// populated; DecodeErr preserves the root cause when the reply could
// not be decoded and a fallback message was synthesized instead.
type AnnotateResult struct {
	Message   *entities.Message
	DecodeErr error
}

// ImageTextExtractor transcribes a chat screenshot into analyzable
// text. Implemented by vision-capable generators.
type ImageTextExtractor interface {
	ExtractScreenshotText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// EmotionAnnotator produces emotion annotations for text.
type EmotionAnnotator interface {
	Annotate(ctx context.Context, text string, opts AnnotateOptions) (*AnnotateResult, error)
	// ContactProfile summarizes a counterpart's disposition from their
	// stored message history.
	ContactProfile(ctx context.Context, messages []*entities.Message, contactName string, persona entities.Persona) (string, error)
}
