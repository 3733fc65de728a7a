package llm

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yoonjw/maumlog/domain/entities"
)

// The model is instructed to answer with exactly these labeled lines;
// the decoder recognizes nothing else.
const (
	emotionPrefix   = "감정"
	intensityPrefix = "강도"
	replyPrefix     = "추천답변"
)

// isKoreanText decides the prompt language. Only letters count toward
// the denominator (whitespace, digits and punctuation are ignored);
// fewer than 5 letters defaults to Korean, otherwise a Hangul share of
// at least 30% picks Korean.
func isKoreanText(text string) bool {
	total := 0
	korean := 0
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsDigit(r) || !unicode.IsLetter(r) {
			continue
		}
		total++
		if isHangul(r) {
			korean++
		}
	}
	if total < 5 {
		return true
	}
	return float64(korean)/float64(total) >= 0.3
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7A3) || // syllables
		(r >= 0x1100 && r <= 0x11FF) || // jamo
		(r >= 0x3130 && r <= 0x318F) || // compatibility jamo
		(r >= 0xA960 && r <= 0xA97F) || // jamo extended-A
		(r >= 0xD7B0 && r <= 0xD7FF) // jamo extended-B
}

// personaBlock renders the MBTI hint section, empty when no hint is set.
func personaBlock(p entities.Persona) string {
	if p == "" || p == entities.PersonaUnknown {
		return ""
	}
	return fmt.Sprintf("\n\n🧠 **상대방 MBTI: %s (%s)**\n특성: %s\n감정 해석 가이드: %s\n",
		p.Code(), p.Nickname(), p.Characteristic(), p.InterpretationGuideline())
}

// responseFormatKorean spells out the four mandatory reply lines with
// the closed category list.
const responseFormatKorean = "감정: [기쁨/슬픔/분노/공포/혐오/놀람/중립 중 정확히 하나만]\n" +
	"강도: [0.0에서 1.0 사이의 소수점 숫자]\n" +
	"분석: [감정 분석 이유를 1-2문장으로 한국어로]\n" +
	"추천답변: [상황에 맞는 공감하고 적절한 답변 1-2문장을 한국어로]"

const responseFormatEnglish = "감정: [Exactly one of: 기쁨/슬픔/분노/공포/혐오/놀람/중립]\n" +
	"강도: [A decimal number between 0.0 and 1.0]\n" +
	"분석: [Reason for emotion analysis in 1-2 sentences IN ENGLISH]\n" +
	"추천답변: [An empathetic and appropriate response in 1-2 sentences IN ENGLISH]"

// analysisPrompt builds the single-message instruction block.
func analysisPrompt(text string, persona entities.Persona) string {
	if isKoreanText(text) {
		return "당신은 감정 분석 전문가입니다. 다음 문장의 감정을 정확하게 분석해주세요." +
			personaBlock(persona) +
			"\n\n⚠️ 반드시 아래 형식을 정확히 지켜서 답변해주세요:\n\n" +
			responseFormatKorean + "\n\n" +
			"분석할 문장: \"" + text + "\"\n\n" +
			"⚠️ 중요: 분석과 추천답변은 반드시 한국어로 작성하세요!"
	}
	return "You are an emotion analysis expert. Please accurately analyze the emotion of the following sentence." +
		personaBlock(persona) +
		"\n\n⚠️ Please follow this format exactly:\n\n" +
		responseFormatEnglish + "\n\n" +
		"Sentence to analyze: \"" + text + "\"\n\n" +
		"Please follow the format exactly."
}

// contextAnalysisPrompt builds the instruction block for a message with
// trailing conversation context.
func contextAnalysisPrompt(text, conversationContext string, persona entities.Persona) string {
	if isKoreanText(text) {
		return "당신은 감정 분석 전문가입니다.\n\n" +
			"📚 **이전 대화 맥락:**\n" + conversationContext +
			"\n\n" + personaBlock(persona) +
			"\n\n🎯 **지금 막 받은 메시지 (분석 대상):**\n" +
			"\"" + text + "\"\n\n" +
			"⚠️ 중요: 위의 이전 대화 내용을 반드시 참고하여, 지금 받은 메시지의 감정을 분석하고 답변을 추천해주세요.\n" +
			"상대방이 이전에 어떤 말을 했는지, 어떤 상황인지 맥락을 고려해서 분석하세요.\n\n" +
			"반드시 아래 형식을 정확히 지켜서 답변해주세요:\n\n" +
			responseFormatKorean + "\n\n" +
			"⚠️ 중요: 분석과 추천답변은 반드시 한국어로 작성하세요!"
	}
	return "You are an emotion analysis expert.\n\n" +
		"📚 **Previous Conversation Context:**\n" + conversationContext +
		"\n\n" + personaBlock(persona) +
		"\n\n🎯 **Current Message Just Received (Target for Analysis):**\n" +
		"\"" + text + "\"\n\n" +
		"⚠️ IMPORTANT: You must consider the previous conversation context above when analyzing this current message.\n" +
		"Consider what the person said before and the current situation based on the context.\n\n" +
		"Please follow this format exactly:\n\n" +
		responseFormatEnglish + "\n\n" +
		"Please follow the format exactly."
}

// profilePrompt asks for a disposition summary over a contact's stored
// messages, up to 20 of them.
func profilePrompt(messages []*entities.Message, contactName string, persona entities.Persona) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "다음은 '%s'님과의 대화 기록입니다:\n\n", contactName)
	for i, msg := range messages {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&sb, "%d. [%s] %s님: \"%s\"\n", i+1, msg.FormattedTimestamp(), contactName, msg.Content)
		fmt.Fprintf(&sb, "   감정: %s (%d%%)\n\n", msg.Emotion.Korean(), msg.IntensityPercent())
	}

	prompt := "당신은 심리 분석 전문가입니다.\n\n" + sb.String()
	if persona != "" && persona != entities.PersonaUnknown {
		prompt += fmt.Sprintf("\n\n참고: 이 사람의 MBTI는 %s입니다.\n특성: %s", persona.DisplayName(), persona.Characteristic())
	}
	prompt += "\n\n위 대화 기록을 분석하여, 이 사람의 성향을 요약해주세요.\n\n" +
		"다음 항목을 포함해서 3-4문장으로 작성하세요:\n" +
		"1. 평소 감정 표현 방식 (솔직한지, 절제적인지)\n" +
		"2. 자주 나타나는 감정 패턴\n" +
		"3. 스트레스나 힘들 때의 특징적인 반응\n" +
		"4. 이 사람과 대화할 때 주의할 점\n\n" +
		"⚠️ 반드시 한국어로, 존댓말로, 객관적이고 따뜻한 어조로 작성하세요."
	return prompt
}
