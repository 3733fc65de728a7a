package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

// Annotator runs the annotation protocol against a text generator:
// build the instruction block, send it, decode the labeled reply into
// an annotated message.
type Annotator struct {
	gen    repositories.TextGenerator
	logger *zap.Logger
}

// NewAnnotator creates an annotator on top of any text generator.
func NewAnnotator(gen repositories.TextGenerator, logger *zap.Logger) *Annotator {
	return &Annotator{gen: gen, logger: logger}
}

// Annotate analyzes one piece of text. Blank input and transport
// failures propagate; a structurally unusable reply does not — the
// caller always receives a message, with the root cause preserved in
// DecodeErr when a fallback had to be synthesized.
func (a *Annotator) Annotate(ctx context.Context, text string, opts repositories.AnnotateOptions) (*repositories.AnnotateResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, repositories.ErrEmptyText
	}

	var prompt string
	if opts.ConversationContext != "" {
		prompt = contextAnalysisPrompt(text, opts.ConversationContext, opts.Persona)
	} else {
		prompt = analysisPrompt(text, opts.Persona)
	}

	reply, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyReply) {
			a.logger.Warn("unusable analysis reply, synthesizing fallback", zap.Error(err))
			msg := entities.NewMessage(text, entities.EmotionNeutral, 0.5, fallbackReply, opts.ContactName)
			return &repositories.AnnotateResult{Message: msg, DecodeErr: err}, nil
		}
		return nil, err
	}

	decoded := decodeReply(reply)
	msg := entities.NewMessage(text, decoded.Emotion, decoded.Intensity, decoded.SuggestedReply, opts.ContactName)

	a.logger.Info("emotion analyzed",
		zap.String("emotion", decoded.Emotion.Korean()),
		zap.Float64("intensity", msg.Intensity()),
		zap.Bool("with_context", opts.ConversationContext != ""))

	return &repositories.AnnotateResult{Message: msg}, nil
}

// ContactProfile summarizes a counterpart's disposition from their
// stored messages. Below five messages there is not enough signal, so
// a guidance string is returned instead of a model call.
func (a *Annotator) ContactProfile(ctx context.Context, messages []*entities.Message, contactName string, persona entities.Persona) (string, error) {
	if len(messages) == 0 {
		return "아직 충분한 대화 데이터가 없습니다.", nil
	}
	if len(messages) < 5 {
		return fmt.Sprintf("프로필 생성에는 최소 5개 이상의 대화가 필요합니다. (현재: %d개)", len(messages)), nil
	}

	a.logger.Info("generating contact profile",
		zap.String("contact", contactName),
		zap.Int("messages", len(messages)))

	reply, err := a.gen.Generate(ctx, profilePrompt(messages, contactName, persona))
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyReply) {
			return "프로필 생성 중 오류가 발생했습니다.", nil
		}
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

var _ repositories.EmotionAnnotator = (*Annotator)(nil)
