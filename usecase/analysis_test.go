package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/adapters/filestore"
	"github.com/yoonjw/maumlog/adapters/llm"
	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

func newTestAnalysis(t *testing.T, gen *llm.MockGenerator) (*AnalysisService, *filestore.Store) {
	t.Helper()
	logger := zap.NewNop()
	store, err := filestore.New(filepath.Join(t.TempDir(), "emotion_data.txt"), logger)
	if err != nil {
		t.Fatal(err)
	}
	return NewAnalysisService(llm.NewAnnotator(gen, logger), store, logger), store
}

func TestAnalyzePersists(t *testing.T) {
	gen := &llm.MockGenerator{Reply: "감정: [기쁨]\n강도: 0.9\n추천답변: 축하해요!"}
	service, store := newTestAnalysis(t, gen)

	msg, err := service.Analyze(context.Background(), "드디어 합격했어!", "친구", entities.PersonaUnknown)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if msg.Emotion != entities.EmotionJoy {
		t.Errorf("emotion = %s, want JOY", msg.Emotion)
	}
	if store.TotalCount() != 1 {
		t.Errorf("message should be persisted, store has %d", store.TotalCount())
	}
}

func TestAnalyzePropagatesInputError(t *testing.T) {
	service, store := newTestAnalysis(t, llm.NewMockGenerator())

	if _, err := service.Analyze(context.Background(), "   ", "", entities.PersonaUnknown); !errors.Is(err, repositories.ErrEmptyText) {
		t.Errorf("blank input should fail with ErrEmptyText, got %v", err)
	}
	if store.TotalCount() != 0 {
		t.Error("nothing should be persisted on input error")
	}
}

func TestProfileUsesStoredHistory(t *testing.T) {
	gen := &llm.MockGenerator{Reply: "감정 표현이 풍부한 분입니다."}
	service, store := newTestAnalysis(t, gen)

	for i := 0; i < 6; i++ {
		if err := store.Save(entities.NewMessage("메시지", entities.EmotionJoy, 0.5, "", "친구")); err != nil {
			t.Fatal(err)
		}
	}

	profile, err := service.Profile(context.Background(), "친구", entities.PersonaENFP)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile != "감정 표현이 풍부한 분입니다." {
		t.Errorf("profile = %q", profile)
	}
}
