package entities

import "strings"

// Persona is an optional MBTI hint about the counterpart. It only
// enriches analysis prompts; it never affects decoding.
type Persona string

const (
	PersonaINTJ Persona = "INTJ"
	PersonaINTP Persona = "INTP"
	PersonaENTJ Persona = "ENTJ"
	PersonaENTP Persona = "ENTP"
	PersonaINFJ Persona = "INFJ"
	PersonaINFP Persona = "INFP"
	PersonaENFJ Persona = "ENFJ"
	PersonaENFP Persona = "ENFP"
	PersonaISTJ Persona = "ISTJ"
	PersonaISFJ Persona = "ISFJ"
	PersonaESTJ Persona = "ESTJ"
	PersonaESFJ Persona = "ESFJ"
	PersonaISTP Persona = "ISTP"
	PersonaISFP Persona = "ISFP"
	PersonaESTP Persona = "ESTP"
	PersonaESFP Persona = "ESFP"

	PersonaUnknown Persona = "UNKNOWN"
)

type personaInfo struct {
	Nickname       string
	Characteristic string
}

var personaInfos = map[Persona]personaInfo{
	PersonaINTJ: {"전략가", "독립적이고 전략적. 감정 표현 절제적"},
	PersonaINTP: {"논리술사", "논리적이고 분석적. 감정보다 이성 우선"},
	PersonaENTJ: {"통솔자", "리더십 강함. 직설적이고 효율적"},
	PersonaENTP: {"변론가", "창의적이고 도전적. 감정보다 논리"},
	PersonaINFJ: {"옹호자", "이상주의적. 깊은 공감 능력"},
	PersonaINFP: {"중재자", "감수성 예민. '괜찮아'가 진짜 힘든 신호"},
	PersonaENFJ: {"선도자", "타인 감정 민감. 배려심 많음"},
	PersonaENFP: {"활동가", "열정적이고 긍정적. 감정 솔직"},
	PersonaISTJ: {"현실주의자", "책임감 강함. 감정 표현 절제"},
	PersonaISFJ: {"수호자", "헌신적이고 온화. 타인 배려"},
	PersonaESTJ: {"경영자", "실용적이고 직설적. '괜찮아'는 정말 괜찮음"},
	PersonaESFJ: {"집정관", "사교적이고 배려심 많음. 조화 중시"},
	PersonaISTP: {"장인", "현실적이고 독립적. 감정 표현 최소화"},
	PersonaISFP: {"모험가", "온화하고 유연. 감정 내면화"},
	PersonaESTP: {"사업가", "활동적이고 실용적. 직설적"},
	PersonaESFP: {"연예인", "사교적이고 낙관적. 감정 표현 풍부"},

	PersonaUnknown: {"미설정", "MBTI를 설정해주세요"},
}

// Code returns the four-letter MBTI code.
func (p Persona) Code() string {
	return string(p)
}

// Nickname returns the Korean nickname for the type.
func (p Persona) Nickname() string {
	return personaInfos[p].Nickname
}

// Characteristic returns a short Korean description of the type.
func (p Persona) Characteristic() string {
	return personaInfos[p].Characteristic
}

// DisplayName renders "INFP (중재자)".
func (p Persona) DisplayName() string {
	return p.Code() + " (" + p.Nickname() + ")"
}

// InterpretationGuideline tells the model how literally to take this
// type's emotional wording.
func (p Persona) InterpretationGuideline() string {
	switch p {
	case PersonaINFP, PersonaINFJ:
		return "매우 감수성이 예민하며, '괜찮아'라고 말해도 실제로는 깊이 상처받았을 가능성이 높음. 간접적 표현 뒤에 숨겨진 진짜 감정을 파악해야 함."
	case PersonaENFP, PersonaENFJ:
		return "감정 표현이 솔직하고 풍부함. 말 그대로 받아들여도 됨. 기쁠 때 정말 기쁘고, 슬플 때 정말 슬픔."
	case PersonaINTJ, PersonaINTP:
		return "논리적이고 이성적. 감정 표현을 최소화하지만 내면에는 감정이 있음. '괜찮아'는 정말 괜찮거나, 혼자 해결하겠다는 의미."
	case PersonaESTJ, PersonaENTJ:
		return "직설적이고 솔직함. '괜찮아'는 정말 괜찮다는 의미. 문제가 있으면 바로 말함. 돌려 말하지 않음."
	case PersonaISFJ, PersonaESFJ:
		return "타인 배려가 강함. 본인 감정보다 상대방 배려를 우선시할 수 있음. '괜찮아'가 상대를 편하게 하려는 말일 수 있음."
	case PersonaISTP, PersonaESTP:
		return "현실적이고 실용적. 감정 표현 최소화. '괜찮아'는 대부분 정말 괜찮거나 관심 없다는 의미."
	case PersonaISFP, PersonaESFP:
		return "감정을 내면화하거나(ISFP) 표출함(ESFP). ISFP는 '괜찮아'가 힘든 신호일 수 있음. ESFP는 솔직함."
	default:
		return "MBTI 정보가 없어 일반적인 감정 해석을 적용함."
	}
}

// PersonaFromString normalizes user input into a Persona, defaulting to
// PersonaUnknown for blank or unrecognized values.
func PersonaFromString(s string) Persona {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PersonaUnknown
	}
	p := Persona(s)
	if _, ok := personaInfos[p]; ok {
		return p
	}
	return PersonaUnknown
}
