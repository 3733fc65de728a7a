package entities

import "strings"

// Emotion is the closed set of emotion categories the analyzer can assign.
type Emotion string

const (
	EmotionJoy      Emotion = "JOY"
	EmotionSadness  Emotion = "SADNESS"
	EmotionAnger    Emotion = "ANGER"
	EmotionFear     Emotion = "FEAR"
	EmotionDisgust  Emotion = "DISGUST"
	EmotionSurprise Emotion = "SURPRISE"
	EmotionNeutral  Emotion = "NEUTRAL"
)

// Emotions lists every category in enumeration order. Tie-breaks and
// zero-filled histograms rely on this order being stable.
var Emotions = []Emotion{
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionDisgust,
	EmotionSurprise,
	EmotionNeutral,
}

type emotionInfo struct {
	Korean      string
	ColorCode   string
	Emoji       string
	Description string
}

var emotionInfos = map[Emotion]emotionInfo{
	EmotionJoy:      {"기쁨", "#FFD700", "😊", "긍정적이고 행복한 감정"},
	EmotionSadness:  {"슬픔", "#4169E1", "😢", "우울하고 슬픈 감정"},
	EmotionAnger:    {"분노", "#FF4444", "😠", "화나고 분노하는 감정"},
	EmotionFear:     {"공포", "#800080", "😨", "두렵고 불안한 감정"},
	EmotionDisgust:  {"혐오", "#32CD32", "🤢", "혐오스럽고 거부감이 드는 감정"},
	EmotionSurprise: {"놀람", "#FF69B4", "😲", "놀랍고 예상치 못한 감정"},
	EmotionNeutral:  {"중립", "#808080", "😐", "중립적이고 평온한 감정"},
}

// Korean returns the display label used in prompts and the UI.
func (e Emotion) Korean() string {
	return emotionInfos[e].Korean
}

// ColorCode returns the hex color associated with the category.
func (e Emotion) ColorCode() string {
	return emotionInfos[e].ColorCode
}

// Emoji returns the emoji associated with the category.
func (e Emotion) Emoji() string {
	return emotionInfos[e].Emoji
}

// Description returns a short Korean description of the category.
func (e Emotion) Description() string {
	return emotionInfos[e].Description
}

func (e Emotion) String() string {
	info := emotionInfos[e]
	return info.Emoji + " " + info.Korean
}

// IsValid reports whether e is one of the defined categories.
func (e Emotion) IsValid() bool {
	_, ok := emotionInfos[e]
	return ok
}

// EmotionFromName resolves a stored category name (e.g. "JOY").
// Unknown names resolve to Neutral with ok=false so a corrupt log line
// can be detected by the caller.
func EmotionFromName(name string) (Emotion, bool) {
	e := Emotion(strings.TrimSpace(name))
	if e.IsValid() {
		return e, true
	}
	return EmotionNeutral, false
}

// EmotionFromKorean resolves a Korean label the model replied with.
// Matching is tolerant: exact, or substring containment in either
// direction ("기쁨이 느껴짐" still resolves to Joy). Empty or
// unrecognized input resolves to Neutral.
func EmotionFromKorean(label string) Emotion {
	label = strings.TrimSpace(label)
	if label == "" {
		return EmotionNeutral
	}
	for _, e := range Emotions {
		korean := emotionInfos[e].Korean
		if label == korean || strings.Contains(korean, label) || strings.Contains(label, korean) {
			return e
		}
	}
	return EmotionNeutral
}
