package filestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emotion_data.txt")
	s, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, path
}

func TestMissingFileStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if s.TotalCount() != 0 {
		t.Errorf("expected empty store, got %d messages", s.TotalCount())
	}
}

func TestRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	original := entities.NewMessage("여러 줄은 아니지만 특수문자 !@# 포함", entities.EmotionJoy, 0.85, "좋아요!", "윤정우")
	if err := s.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TotalCount() != 1 {
		t.Fatalf("expected 1 message after reload, got %d", reloaded.TotalCount())
	}

	got := reloaded.All()[0]
	if got.Content != original.Content {
		t.Errorf("content = %q, want %q", got.Content, original.Content)
	}
	if got.Emotion != entities.EmotionJoy {
		t.Errorf("emotion = %s, want JOY", got.Emotion)
	}
	if got.Intensity() != 0.85 {
		t.Errorf("intensity = %f, want 0.85", got.Intensity())
	}
	if got.SuggestedReply != "좋아요!" {
		t.Errorf("reply = %q", got.SuggestedReply)
	}
	if got.ContactName() != "윤정우" {
		t.Errorf("contact = %q", got.ContactName())
	}
	if !got.Timestamp.Truncate(time.Second).Equal(original.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, original.Timestamp)
	}
}

func TestRoundTripWithPipes(t *testing.T) {
	s, path := newTestStore(t)

	content := "파이프|가|들어간|내용"
	reply := "응답|에도|파이프"
	if err := s.Save(entities.NewMessage(content, entities.EmotionAnger, 0.5, reply, "이|름")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := reloaded.All()[0]
	if got.Content != content {
		t.Errorf("content = %q, want %q", got.Content, content)
	}
	if got.SuggestedReply != reply {
		t.Errorf("reply = %q, want %q", got.SuggestedReply, reply)
	}
	if got.ContactName() != "이|름" {
		t.Errorf("contact = %q, want 이|름", got.ContactName())
	}
}

func TestLoadSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emotion_data.txt")
	content := "2025-04-04T17:48:56|JOY|0.850|좋은 일|축하해요|친구\n" +
		"이건 완전히 깨진 줄\n" +
		"2025-04-04T18:00:00|SADNESS|0.600|슬픈 일|괜찮아요|친구\n" +
		"2025-04-04T18:10:00|NOPE|0.500|감정 이름 깨짐|x|y\n" +
		"2025-04-04T18:20:00|ANGER|abc|강도 깨짐|x|y\n" +
		"깨진날짜|FEAR|0.300|날짜 깨짐|x|y\n" +
		"2025-04-04T19:00:00|NEUTRAL|0.500|멀쩡한 줄|응|친구\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.TotalCount() != 3 {
		t.Errorf("expected 3 valid messages, got %d", s.TotalCount())
	}
}

func TestLegacyFiveFieldLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emotion_data.txt")
	line := "2025-04-04T17:48:56|JOY|0.850|옛날 형식 내용|옛날 답변\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.TotalCount() != 1 {
		t.Fatalf("legacy line should decode, got %d messages", s.TotalCount())
	}
	if got := s.All()[0].ContactName(); got != entities.UnknownContact {
		t.Errorf("legacy contact = %q, want %q", got, entities.UnknownContact)
	}
}

func TestQueries(t *testing.T) {
	s, _ := newTestStore(t)

	save := func(content string, e entities.Emotion, intensity float64, contact string) {
		t.Helper()
		if err := s.Save(entities.NewMessage(content, e, intensity, "답", contact)); err != nil {
			t.Fatal(err)
		}
	}
	save("하나", entities.EmotionJoy, 0.9, "친구")
	save("둘", entities.EmotionJoy, 0.7, "친구")
	save("셋", entities.EmotionSadness, 0.4, "동료")

	if got := len(s.ByEmotion(entities.EmotionJoy)); got != 2 {
		t.Errorf("ByEmotion(JOY) = %d, want 2", got)
	}
	if got := len(s.ByDate(time.Now())); got != 3 {
		t.Errorf("ByDate(today) = %d, want 3", got)
	}
	if got := s.TodayCount(); got != 3 {
		t.Errorf("TodayCount = %d, want 3", got)
	}

	byContact := s.ByContact("친구", 1)
	if len(byContact) != 1 || byContact[0].Content != "둘" {
		t.Errorf("ByContact cap should keep the most recent, got %+v", byContact)
	}

	recent := s.Recent(2)
	if len(recent) != 2 || recent[0].Content != "셋" || recent[1].Content != "둘" {
		t.Errorf("Recent should be newest-first, got %+v", recent)
	}

	names := s.ContactNames()
	if len(names) != 2 {
		t.Errorf("ContactNames = %v", names)
	}

	if got := s.MostFrequentEmotion(); got != entities.EmotionJoy {
		t.Errorf("MostFrequentEmotion = %s, want JOY", got)
	}

	avg := s.AverageIntensity()
	want := (0.9 + 0.7 + 0.4) / 3
	if diff := avg - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AverageIntensity = %f, want %f", avg, want)
	}
}

func TestEmptyStoreDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.MostFrequentEmotion(); got != entities.EmotionNeutral {
		t.Errorf("empty store MostFrequentEmotion = %s, want NEUTRAL", got)
	}
	if got := s.AverageIntensity(); got != 0.0 {
		t.Errorf("empty store AverageIntensity = %f, want 0", got)
	}
}

func TestDailyEmotionStats(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Save(entities.NewMessage("오늘", entities.EmotionFear, 0.6, "", "")); err != nil {
		t.Fatal(err)
	}

	stats := s.DailyEmotionStats(7)
	if len(stats) != 7 {
		t.Fatalf("expected 7 days, got %d", len(stats))
	}
	today := stats[len(stats)-1]
	if today.Counts[entities.EmotionFear] != 1 {
		t.Errorf("today's FEAR count = %d, want 1", today.Counts[entities.EmotionFear])
	}
	// every category present even at zero
	for _, e := range entities.Emotions {
		if _, ok := today.Counts[e]; !ok {
			t.Errorf("category %s missing from histogram", e)
		}
	}
	if got := stats[0].Counts[entities.EmotionFear]; got != 0 {
		t.Errorf("six days ago should be zero-filled, got %d", got)
	}
}

func TestClear(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.Save(entities.NewMessage("지울 것", entities.EmotionJoy, 0.5, "", "")); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.TotalCount() != 0 {
		t.Errorf("store should be empty after Clear")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("backing file should exist after Clear: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("backing file should be empty after Clear, got %q", data)
	}
}
