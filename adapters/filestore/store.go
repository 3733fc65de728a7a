// Package filestore persists annotated messages as a line-oriented
// text log. One record per line, six pipe-delimited fields:
//
//	timestamp|EMOTION|intensity|content|suggested reply|contact
//
// Literal pipes inside free-text fields are written as the full-width
// bar "｜" and restored on read, so the six-way split is never
// ambiguous. Text that already contains "｜" is the one accepted
// lossy case. The whole in-memory collection is rewritten on every
// save; volumes are personal-chat scale, so simplicity wins over
// incremental appends.
package filestore

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

const timestampLayout = "2006-01-02T15:04:05"

// Store is a file-backed message repository. It owns the backing file
// exclusively; access is single-process, single-writer.
type Store struct {
	path     string
	logger   *zap.Logger
	messages []*entities.Message
}

// New opens (or starts) the log at path. A missing file is not an
// error; a line that fails to decode is logged and skipped so one bad
// record never loses the rest.
func New(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	logger.Info("message store initialized",
		zap.String("path", path),
		zap.Int("messages", len(s.messages)))
	return s, nil
}

func (s *Store) load() error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.logger.Warn("message log unreadable, starting empty", zap.Error(err))
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		msg, err := decodeLine(line)
		if err != nil {
			s.logger.Warn("message log line skipped",
				zap.Int("line", lineNumber),
				zap.Error(err))
			continue
		}
		s.messages = append(s.messages, msg)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("message log truncated while reading", zap.Error(err))
	}
	return nil
}

// Save appends the message and rewrites the backing file. A write
// failure is reported but the in-memory append stands.
func (s *Store) Save(message *entities.Message) error {
	if message == nil {
		return nil
	}
	s.messages = append(s.messages, message)
	if err := s.flush(); err != nil {
		s.logger.Error("message log write failed", zap.Error(err))
		return err
	}
	s.logger.Info("message saved",
		zap.String("summary", message.Summary()),
		zap.String("contact", message.ContactName()))
	return nil
}

func (s *Store) flush() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("rewriting message log: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, msg := range s.messages {
		if _, err := w.WriteString(encodeLine(msg) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("rewriting message log: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("rewriting message log: %w", err)
	}
	return f.Close()
}

// encodeLine renders one record. Intensity keeps three decimals so the
// round-trip is stable.
func encodeLine(msg *entities.Message) string {
	return fmt.Sprintf("%s|%s|%.3f|%s|%s|%s",
		msg.Timestamp.Format(timestampLayout),
		msg.Emotion,
		msg.Intensity(),
		escapePipes(msg.Content),
		escapePipes(msg.SuggestedReply),
		escapePipes(msg.ContactName()))
}

func decodeLine(line string) (*entities.Message, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil, fmt.Errorf("잘못된 데이터 형식: %d개 필드", len(parts))
	}

	ts, err := time.ParseInLocation(timestampLayout, parts[0], time.Local)
	if err != nil {
		return nil, fmt.Errorf("잘못된 타임스탬프 %q: %w", parts[0], err)
	}

	emotion, ok := entities.EmotionFromName(parts[1])
	if !ok {
		return nil, fmt.Errorf("알 수 없는 감정 이름: %q", parts[1])
	}

	intensity, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("잘못된 강도 %q: %w", parts[2], err)
	}

	// pre-contact records carry five fields; contact defaults
	contact := ""
	if len(parts) > 5 {
		contact = unescapePipes(parts[5])
	}

	msg := entities.NewMessage(
		unescapePipes(parts[3]),
		emotion,
		intensity,
		unescapePipes(parts[4]),
		contact,
	)
	msg.Timestamp = ts
	return msg, nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "｜")
}

func unescapePipes(s string) string {
	return strings.ReplaceAll(s, "｜", "|")
}

// All returns every message in append order.
func (s *Store) All() []*entities.Message {
	return append([]*entities.Message(nil), s.messages...)
}

// ByDate returns the messages created on the given calendar day.
func (s *Store) ByDate(date time.Time) []*entities.Message {
	var out []*entities.Message
	y, m, d := date.Date()
	for _, msg := range s.messages {
		my, mm, md := msg.Timestamp.Date()
		if my == y && mm == m && md == d {
			out = append(out, msg)
		}
	}
	return out
}

// ByEmotion returns the messages annotated with the given category.
func (s *Store) ByEmotion(emotion entities.Emotion) []*entities.Message {
	var out []*entities.Message
	for _, msg := range s.messages {
		if msg.Emotion == emotion {
			out = append(out, msg)
		}
	}
	return out
}

// ByContact returns a contact's messages in chronological order,
// capped to the most recent limit when limit > 0.
func (s *Store) ByContact(name string, limit int) []*entities.Message {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	var out []*entities.Message
	for _, msg := range s.messages {
		if msg.ContactName() == name {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Recent returns the n most recent messages, newest first.
func (s *Store) Recent(n int) []*entities.Message {
	if n <= 0 {
		return nil
	}
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	recent := s.messages[start:]
	out := make([]*entities.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, recent[i])
	}
	return out
}

// ContactNames returns the distinct counterpart labels, sorted for
// stable output.
func (s *Store) ContactNames() []string {
	seen := make(map[string]struct{})
	for _, msg := range s.messages {
		seen[msg.ContactName()] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DailyEmotionStats returns per-day histograms for the trailing days
// window ending today, oldest day first. Every category is present
// even when its count is zero.
func (s *Store) DailyEmotionStats(days int) []repositories.DailyEmotionStat {
	stats := make([]repositories.DailyEmotionStat, 0, days)
	today := time.Now()
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		counts := make(map[entities.Emotion]int, len(entities.Emotions))
		for _, e := range entities.Emotions {
			counts[e] = 0
		}
		for _, msg := range s.ByDate(date) {
			counts[msg.Emotion]++
		}
		stats = append(stats, repositories.DailyEmotionStat{Date: date, Counts: counts})
	}
	return stats
}

// EmotionDistribution counts messages per category over the whole log.
func (s *Store) EmotionDistribution() map[entities.Emotion]int {
	counts := make(map[entities.Emotion]int, len(entities.Emotions))
	for _, e := range entities.Emotions {
		counts[e] = 0
	}
	for _, msg := range s.messages {
		counts[msg.Emotion]++
	}
	return counts
}

// MostFrequentEmotion returns the dominant category. Ties resolve in
// enumeration order; an empty store reports Neutral.
func (s *Store) MostFrequentEmotion() entities.Emotion {
	if len(s.messages) == 0 {
		return entities.EmotionNeutral
	}
	counts := s.EmotionDistribution()
	best := entities.Emotions[0]
	for _, e := range entities.Emotions[1:] {
		if counts[e] > counts[best] {
			best = e
		}
	}
	return best
}

// AverageIntensity returns the mean intensity, 0.0 when empty.
func (s *Store) AverageIntensity() float64 {
	if len(s.messages) == 0 {
		return 0.0
	}
	var sum float64
	for _, msg := range s.messages {
		sum += msg.Intensity()
	}
	return sum / float64(len(s.messages))
}

// TotalCount returns the number of stored messages.
func (s *Store) TotalCount() int {
	return len(s.messages)
}

// TodayCount returns the number of messages created today.
func (s *Store) TodayCount() int {
	return len(s.ByDate(time.Now()))
}

// Clear drops every message and rewrites the now-empty backing file.
func (s *Store) Clear() error {
	s.messages = nil
	if err := s.flush(); err != nil {
		s.logger.Error("message log clear failed", zap.Error(err))
		return err
	}
	s.logger.Info("message store cleared")
	return nil
}

var _ repositories.MessageRepository = (*Store)(nil)
