package entities

import (
	"fmt"
	"strings"
	"time"
)

// Utterance is one timestamped line of an imported chat transcript.
// Utterances are transient parser output; they are never persisted as-is.
type Utterance struct {
	Timestamp time.Time
	Speaker   string
	Text      string
}

func (u Utterance) String() string {
	return fmt.Sprintf("[%s] %s: %s", u.Timestamp.Format("01-02 15:04"), u.Speaker, u.Text)
}

// Conversation holds a fully parsed transcript together with the
// inferred participant roles. The speaker with the most utterances is
// treated as the primary user ("me"); the runner-up is the counterpart.
type Conversation struct {
	Utterances  []Utterance
	counts      map[string]int
	order       []string // speakers in first-seen order, for stable ranking
	Primary     string
	Counterpart string
}

// NewConversation returns an empty conversation ready to receive
// utterances.
func NewConversation() *Conversation {
	return &Conversation{counts: make(map[string]int)}
}

// Add appends an utterance and updates the per-speaker counts.
func (c *Conversation) Add(u Utterance) {
	if _, seen := c.counts[u.Speaker]; !seen {
		c.order = append(c.order, u.Speaker)
	}
	c.counts[u.Speaker]++
	c.Utterances = append(c.Utterances, u)
}

// SpeakerCount returns the number of utterances recorded for a speaker.
func (c *Conversation) SpeakerCount(speaker string) int {
	return c.counts[speaker]
}

// Speakers returns the distinct speaker labels in first-seen order.
func (c *Conversation) Speakers() []string {
	return append([]string(nil), c.order...)
}

// ResolveParticipants ranks speakers by utterance count and assigns the
// primary and counterpart roles. Ties keep first-seen order. With a
// single speaker both roles resolve to that speaker. Called once after
// the full transcript has been consumed.
func (c *Conversation) ResolveParticipants() {
	if len(c.order) == 0 {
		return
	}
	ranked := append([]string(nil), c.order...)
	// insertion-sort by count descending keeps equal counts stable
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && c.counts[ranked[j]] > c.counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	c.Primary = ranked[0]
	if len(ranked) >= 2 {
		c.Counterpart = ranked[1]
	} else {
		c.Counterpart = ranked[0]
	}
}

// Received returns only the counterpart's utterances, i.e. the messages
// the primary user received. Before participants are resolved every
// utterance is returned.
func (c *Conversation) Received() []Utterance {
	if c.Counterpart == "" {
		return append([]Utterance(nil), c.Utterances...)
	}
	var out []Utterance
	for _, u := range c.Utterances {
		if u.Speaker == c.Counterpart {
			out = append(out, u)
		}
	}
	return out
}

// ContextWindow renders the trailing maxCount utterances as prompt
// context. The primary speaker shows as "나", the counterpart as
// "상대방"; any third speaker keeps its raw label so an unexpected
// multi-party export still renders.
func (c *Conversation) ContextWindow(maxCount int) string {
	var sb strings.Builder
	sb.WriteString("최근 대화 내용 (분석 대상은 '상대방'입니다):\n\n")

	n := len(c.Utterances)
	if maxCount > n {
		maxCount = n
	}
	if maxCount < 0 {
		maxCount = 0
	}
	for _, u := range c.Utterances[n-maxCount:] {
		sender := u.Speaker
		switch u.Speaker {
		case c.Primary:
			sender = "나"
		case c.Counterpart:
			sender = "상대방"
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n", u.Timestamp.Format("01-02 15:04"), sender, u.Text)
	}
	return sb.String()
}
