package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

func TestAnnotateRejectsBlankText(t *testing.T) {
	a := NewAnnotator(NewMockGenerator(), zap.NewNop())
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := a.Annotate(context.Background(), text, repositories.AnnotateOptions{}); !errors.Is(err, repositories.ErrEmptyText) {
			t.Errorf("Annotate(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestAnnotateDecodesReply(t *testing.T) {
	gen := &MockGenerator{Reply: "감정: [기쁨]\n강도: 85\n추천답변: 좋아요!"}
	a := NewAnnotator(gen, zap.NewNop())

	result, err := a.Annotate(context.Background(), "오늘 승진했어!", repositories.AnnotateOptions{ContactName: "김민지"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	msg := result.Message
	if msg.Emotion != entities.EmotionJoy {
		t.Errorf("emotion = %s, want JOY", msg.Emotion)
	}
	if msg.Intensity() != 0.85 {
		t.Errorf("intensity = %f, want 0.85", msg.Intensity())
	}
	if msg.SuggestedReply != "좋아요!" {
		t.Errorf("reply = %q", msg.SuggestedReply)
	}
	if msg.ContactName() != "김민지" {
		t.Errorf("contact = %q", msg.ContactName())
	}
	if msg.Content != "오늘 승진했어!" {
		t.Errorf("content = %q", msg.Content)
	}
	if result.DecodeErr != nil {
		t.Errorf("unexpected decode error: %v", result.DecodeErr)
	}
}

func TestAnnotateUsesContextPrompt(t *testing.T) {
	gen := NewMockGenerator()
	a := NewAnnotator(gen, zap.NewNop())

	opts := repositories.AnnotateOptions{ConversationContext: "[04-04] 상대방: 시험 망했어\n"}
	if _, err := a.Annotate(context.Background(), "괜찮아...", opts); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if len(gen.Prompts) != 1 || !strings.Contains(gen.Prompts[0], "시험 망했어") {
		t.Error("conversation context should reach the prompt")
	}
}

func TestAnnotateEmptyReplyFallsBack(t *testing.T) {
	gen := &MockGenerator{Err: repositories.ErrEmptyReply}
	a := NewAnnotator(gen, zap.NewNop())

	result, err := a.Annotate(context.Background(), "뭐라도 분석해줘", repositories.AnnotateOptions{})
	if err != nil {
		t.Fatalf("structural reply failure must not propagate: %v", err)
	}
	msg := result.Message
	if msg.Emotion != entities.EmotionNeutral || msg.Intensity() != 0.5 {
		t.Errorf("fallback should be NEUTRAL/0.5, got %s/%f", msg.Emotion, msg.Intensity())
	}
	if msg.SuggestedReply != fallbackReply {
		t.Errorf("fallback reply = %q", msg.SuggestedReply)
	}
	if !errors.Is(result.DecodeErr, repositories.ErrEmptyReply) {
		t.Errorf("root cause should be preserved, got %v", result.DecodeErr)
	}
}

func TestAnnotateTransportErrorPropagates(t *testing.T) {
	gen := &MockGenerator{Err: repositories.ErrRateLimited}
	a := NewAnnotator(gen, zap.NewNop())

	if _, err := a.Annotate(context.Background(), "본문", repositories.AnnotateOptions{}); !errors.Is(err, repositories.ErrRateLimited) {
		t.Errorf("transport error should propagate, got %v", err)
	}
}

func TestContactProfileThresholds(t *testing.T) {
	a := NewAnnotator(NewMockGenerator(), zap.NewNop())

	got, err := a.ContactProfile(context.Background(), nil, "친구", entities.PersonaUnknown)
	if err != nil || !strings.Contains(got, "충분한 대화 데이터") {
		t.Errorf("empty history should return guidance, got %q, %v", got, err)
	}

	three := []*entities.Message{
		entities.NewMessage("a", entities.EmotionJoy, 0.5, "", "친구"),
		entities.NewMessage("b", entities.EmotionJoy, 0.5, "", "친구"),
		entities.NewMessage("c", entities.EmotionJoy, 0.5, "", "친구"),
	}
	got, err = a.ContactProfile(context.Background(), three, "친구", entities.PersonaUnknown)
	if err != nil || !strings.Contains(got, "최소 5개") {
		t.Errorf("under-threshold history should return guidance, got %q, %v", got, err)
	}
}

func TestContactProfileGenerates(t *testing.T) {
	gen := &MockGenerator{Reply: "  솔직하고 감정 표현이 풍부한 분입니다.  "}
	a := NewAnnotator(gen, zap.NewNop())

	var messages []*entities.Message
	for i := 0; i < 6; i++ {
		messages = append(messages, entities.NewMessage("메시지", entities.EmotionJoy, 0.5, "", "친구"))
	}
	got, err := a.ContactProfile(context.Background(), messages, "친구", entities.PersonaENFP)
	if err != nil {
		t.Fatalf("ContactProfile failed: %v", err)
	}
	if got != "솔직하고 감정 표현이 풍부한 분입니다." {
		t.Errorf("profile = %q", got)
	}
	if !strings.Contains(gen.Prompts[0], "ENFP") {
		t.Error("persona hint should reach the profile prompt")
	}
}
