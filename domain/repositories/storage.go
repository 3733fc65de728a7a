package repositories

import (
	"time"

	"github.com/yoonjw/maumlog/domain/entities"
)

// MessageRepository is the durable collection of annotated messages.
// Order is append order; implementations are single-writer.
type MessageRepository interface {
	Save(message *entities.Message) error
	All() []*entities.Message
	ByDate(date time.Time) []*entities.Message
	ByEmotion(emotion entities.Emotion) []*entities.Message
	// ByContact returns a contact's messages in chronological order,
	// capped to the most recent limit when limit > 0.
	ByContact(name string, limit int) []*entities.Message
	// Recent returns the n most recent messages, newest first.
	Recent(n int) []*entities.Message
	ContactNames() []string
	// DailyEmotionStats returns per-day histograms for the trailing
	// days window, every category present even at count zero.
	DailyEmotionStats(days int) []DailyEmotionStat
	EmotionDistribution() map[entities.Emotion]int
	MostFrequentEmotion() entities.Emotion
	AverageIntensity() float64
	TotalCount() int
	TodayCount() int
	Clear() error
}

// DailyEmotionStat is one day's emotion histogram.
type DailyEmotionStat struct {
	Date   time.Time
	Counts map[entities.Emotion]int
}
