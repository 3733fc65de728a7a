package llm

import (
	"testing"

	"github.com/yoonjw/maumlog/domain/entities"
)

func TestDecodeReplyFull(t *testing.T) {
	reply := "감정: [기쁨]\n" +
		"강도: 0.8\n" +
		"분석: 매우 긍정적인 문장입니다.\n" +
		"추천답변: 저도 정말 기뻐요!"

	got := decodeReply(reply)
	if got.Emotion != entities.EmotionJoy {
		t.Errorf("emotion = %s, want JOY", got.Emotion)
	}
	if got.Intensity != 0.8 {
		t.Errorf("intensity = %f, want 0.8", got.Intensity)
	}
	if got.SuggestedReply != "저도 정말 기뻐요!" {
		t.Errorf("reply = %q", got.SuggestedReply)
	}
}

func TestDecodeReplyPercentageIntensity(t *testing.T) {
	reply := "감정: [기쁨]\n강도: 85\n추천답변: 좋아요!"

	got := decodeReply(reply)
	if got.Emotion != entities.EmotionJoy {
		t.Errorf("emotion = %s, want JOY", got.Emotion)
	}
	if got.Intensity != 0.85 {
		t.Errorf("85 should normalize to 0.85, got %f", got.Intensity)
	}
	if got.SuggestedReply != "좋아요!" {
		t.Errorf("reply = %q", got.SuggestedReply)
	}
}

func TestDecodeReplySpacedPrefixes(t *testing.T) {
	reply := "감정 : 슬픔\n강도 : 0.6\n추천 답변 : 힘내세요."

	got := decodeReply(reply)
	if got.Emotion != entities.EmotionSadness {
		t.Errorf("emotion = %s, want SADNESS", got.Emotion)
	}
	if got.Intensity != 0.6 {
		t.Errorf("intensity = %f, want 0.6", got.Intensity)
	}
	if got.SuggestedReply != "힘내세요." {
		t.Errorf("reply = %q", got.SuggestedReply)
	}
}

func TestDecodeReplyMissingSuggestedReply(t *testing.T) {
	reply := "감정: [분노]\n강도: 0.9\n분석: 화가 난 문장입니다."

	got := decodeReply(reply)
	if got.SuggestedReply == "" {
		t.Fatal("missing suggested reply must synthesize a canned one")
	}
	if got.SuggestedReply != defaultReply(entities.EmotionAnger) {
		t.Errorf("canned reply should match the resolved category, got %q", got.SuggestedReply)
	}
}

func TestDecodeReplyIgnoresCommentary(t *testing.T) {
	reply := "물론입니다! 분석 결과는 다음과 같습니다:\n\n" +
		"감정: [놀람]\n" +
		"강도: 0.7\n" +
		"추천답변: 정말요?\n\n" +
		"추가로 참고하시면 좋을 내용이 있습니다."

	got := decodeReply(reply)
	if got.Emotion != entities.EmotionSurprise {
		t.Errorf("emotion = %s, want SURPRISE", got.Emotion)
	}
	if got.SuggestedReply != "정말요?" {
		t.Errorf("reply = %q", got.SuggestedReply)
	}
}

func TestDecodeReplyGarbageIntensity(t *testing.T) {
	reply := "감정: 중립\n강도: 강하지 않음\n추천답변: 네."

	got := decodeReply(reply)
	if got.Intensity != 0.5 {
		t.Errorf("unparsable intensity should default to 0.5, got %f", got.Intensity)
	}
}

func TestDecodeReplyIntensityAboveHundredClamps(t *testing.T) {
	got := decodeReply("감정: 기쁨\n강도: 150\n추천답변: 네.")
	if got.Intensity != 1.0 {
		t.Errorf("150 is not a percentage, should clamp to 1.0, got %f", got.Intensity)
	}
}

func TestDecodeReplyUnknownEmotionDefaultsNeutral(t *testing.T) {
	got := decodeReply("감정: [행복함]\n강도: 0.5")
	if got.Emotion != entities.EmotionNeutral {
		t.Errorf("unknown label should resolve to NEUTRAL, got %s", got.Emotion)
	}
}

func TestDecodeReplyEmpty(t *testing.T) {
	got := decodeReply("")
	if got.Emotion != entities.EmotionNeutral || got.Intensity != 0.5 {
		t.Errorf("empty reply should yield NEUTRAL/0.5, got %s/%f", got.Emotion, got.Intensity)
	}
	if got.SuggestedReply != defaultReply(entities.EmotionNeutral) {
		t.Errorf("empty reply should carry the neutral canned reply, got %q", got.SuggestedReply)
	}
}
