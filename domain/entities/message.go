package entities

import (
	"fmt"
	"strings"
	"time"
)

// UnknownContact is the sentinel used when no counterpart name is known.
const UnknownContact = "알 수 없음"

// Message is one analyzed utterance: the original text enriched with an
// emotion category, an intensity in [0,1] and a suggested reply.
type Message struct {
	Content        string
	Emotion        Emotion
	intensity      float64
	SuggestedReply string
	Timestamp      time.Time
	contactName    string
}

// NewMessage creates an annotated message stamped with the current time.
// Intensity is clamped and a blank contact name becomes UnknownContact.
func NewMessage(content string, emotion Emotion, intensity float64, suggestedReply, contactName string) *Message {
	m := &Message{
		Content:        content,
		Emotion:        emotion,
		SuggestedReply: suggestedReply,
		Timestamp:      time.Now(),
	}
	m.SetIntensity(intensity)
	m.SetContactName(contactName)
	return m
}

// Intensity returns the emotion intensity, always within [0,1].
func (m *Message) Intensity() float64 {
	return m.intensity
}

// SetIntensity clamps the value into [0,1] before storing it.
func (m *Message) SetIntensity(v float64) {
	switch {
	case v < 0.0:
		m.intensity = 0.0
	case v > 1.0:
		m.intensity = 1.0
	default:
		m.intensity = v
	}
}

// ContactName returns the counterpart label, never empty.
func (m *Message) ContactName() string {
	return m.contactName
}

// SetContactName stores the counterpart label, falling back to
// UnknownContact when the name is blank.
func (m *Message) SetContactName(name string) {
	if strings.TrimSpace(name) == "" {
		m.contactName = UnknownContact
		return
	}
	m.contactName = name
}

// IntensityPercent returns the intensity as an integer percentage.
func (m *Message) IntensityPercent() int {
	return int(m.intensity * 100)
}

// IntensityLevel buckets the intensity into a Korean display label.
func (m *Message) IntensityLevel() string {
	switch {
	case m.intensity < 0.33:
		return "약함"
	case m.intensity < 0.67:
		return "보통"
	default:
		return "강함"
	}
}

// FormattedTimestamp renders the creation time at minute precision.
func (m *Message) FormattedTimestamp() string {
	return m.Timestamp.Format("2006-01-02 15:04")
}

// Summary renders a short one-line description, e.g. "😊 기쁨 (85%)".
func (m *Message) Summary() string {
	return fmt.Sprintf("%s %s (%d%%)", m.Emotion.Emoji(), m.Emotion.Korean(), m.IntensityPercent())
}
