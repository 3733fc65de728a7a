package llm

import (
	"strconv"
	"strings"

	"github.com/yoonjw/maumlog/domain/entities"
)

// annotation is the decoded form of a model reply.
type annotation struct {
	Emotion        entities.Emotion
	Intensity      float64
	SuggestedReply string
}

// decodeReply extracts the labeled lines from a model reply. The
// decoder is forgiving: unrecognized lines (rationale, commentary,
// markdown fences) are ignored, a broken intensity falls back to 0.5,
// an unknown category falls back to Neutral, and a missing suggested
// reply is replaced with a canned one for the resolved category. It
// never fails.
func decodeReply(reply string) annotation {
	result := annotation{
		Emotion:   entities.EmotionNeutral,
		Intensity: 0.5,
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case hasFieldPrefix(line, emotionPrefix):
			label := afterColon(line)
			label = strings.Trim(label, "[]() ")
			result.Emotion = entities.EmotionFromKorean(label)

		case hasFieldPrefix(line, intensityPrefix):
			result.Intensity = parseIntensity(afterColon(line))

		case hasFieldPrefix(line, replyPrefix), hasFieldPrefix(line, "추천 답변"):
			result.SuggestedReply = afterColon(line)
		}
	}

	if result.SuggestedReply == "" {
		result.SuggestedReply = defaultReply(result.Emotion)
	}
	return result
}

// hasFieldPrefix matches "감정:" and the "감정 :" variant the model
// occasionally produces.
func hasFieldPrefix(line, prefix string) bool {
	return strings.HasPrefix(line, prefix+":") || strings.HasPrefix(line, prefix+" :")
}

func afterColon(line string) string {
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// parseIntensity strips everything but digits and the decimal point,
// treats values in (1,100] as percentages, clamps to [0,1] and falls
// back to 0.5 when nothing parsable remains.
func parseIntensity(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0.5
	}
	if v > 1.0 && v <= 100 {
		v /= 100.0
	}
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// defaultReply supplies the canned suggestion when the model omitted
// one. One fixed string per category.
func defaultReply(e entities.Emotion) string {
	switch e {
	case entities.EmotionJoy:
		return "정말 좋은 소식이네요! 함께 기뻐할게요 😊"
	case entities.EmotionSadness:
		return "힘든 일이 있으신가 봐요. 괜찮으시길 바랄게요."
	case entities.EmotionAnger:
		return "화가 많이 나셨나 봐요. 충분히 이해할 수 있어요."
	case entities.EmotionFear:
		return "걱정이 많으시겠어요. 함께 해결 방법을 찾아봐요."
	case entities.EmotionDisgust:
		return "불편하셨겠어요. 그런 기분 충분히 이해해요."
	case entities.EmotionSurprise:
		return "정말 놀라셨겠어요! 어떤 일이 있었는지 궁금하네요."
	default:
		return "말씀 잘 들었어요. 어떻게 도와드릴까요?"
	}
}

// fallbackReply is used when the model reply could not be decoded at
// all and a best-effort message is synthesized.
const fallbackReply = "응답 분석 중 오류가 발생했습니다."
