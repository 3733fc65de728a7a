// Package kakao reconstructs two-party conversations from KakaoTalk CSV
// exports. The export format is loose: quoted fields may embed commas,
// message text may spill into extra unquoted fields, and timestamps come
// in both 24-hour and 오전/오후 12-hour forms depending on the phone's
// locale. One malformed row never aborts an import.
package kakao

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
)

// deletedSentinel marks a message the sender deleted; such rows carry
// no analyzable content and are dropped.
const deletedSentinel = "삭제된 메시지입니다."

// Parser turns raw transcript text into an ordered conversation.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a transcript parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse consumes an entire export (header line first) and returns the
// reconstructed conversation with participants resolved. Malformed rows
// are logged and skipped.
func (p *Parser) Parse(r io.Reader) (*entities.Conversation, error) {
	conv := entities.NewConversation()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if lineNumber == 1 {
			// header; a UTF-8 BOM may precede it
			continue
		}

		u, ok, err := p.parseLine(line)
		if err != nil {
			p.logger.Warn("transcript row skipped",
				zap.Int("line", lineNumber),
				zap.Error(err))
			continue
		}
		if ok {
			conv.Add(u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	conv.ResolveParticipants()

	p.logger.Info("transcript parsed",
		zap.Int("messages", len(conv.Utterances)),
		zap.Strings("speakers", conv.Speakers()),
		zap.String("primary", conv.Primary),
		zap.String("counterpart", conv.Counterpart))

	return conv, nil
}

// ParseString parses transcript text already held in memory.
func (p *Parser) ParseString(text string) (*entities.Conversation, error) {
	return p.Parse(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
}

// parseLine parses one data row. ok=false without an error means the
// row was valid but carries nothing to analyze (blank or deleted).
func (p *Parser) parseLine(line string) (entities.Utterance, bool, error) {
	if strings.TrimSpace(line) == "" {
		return entities.Utterance{}, false, nil
	}

	fields := splitFields(line)
	if len(fields) < 3 {
		return entities.Utterance{}, false, fmt.Errorf("필드 부족: %d", len(fields))
	}

	ts, err := parseTimestamp(strings.TrimSpace(fields[0]))
	if err != nil {
		return entities.Utterance{}, false, err
	}

	speaker := strings.TrimSpace(fields[1])

	// Message text may itself have contained unquoted commas that the
	// field split broke apart; rejoin everything after the speaker.
	text := strings.TrimSpace(strings.Join(fields[2:], ","))
	if text == "" || text == deletedSentinel {
		return entities.Utterance{}, false, nil
	}

	return entities.Utterance{Timestamp: ts, Speaker: speaker, Text: text}, true, nil
}

// splitFields splits a CSV row on commas outside double quotes. The
// quotes themselves toggle state and are not kept; this matches the
// export's grammar rather than RFC 4180 (no escaped quotes exist in it).
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// parseTimestamp accepts "2025-04-04 17:48:56" and the 12-hour locale
// form "2025-04-04 오후 5:48:56".
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return ts, nil
	}

	replaced := strings.NewReplacer("오전", "AM", "오후", "PM").Replace(s)
	if ts, err := time.ParseInLocation("2006-01-02 PM 3:04:05", replaced, time.Local); err == nil {
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("날짜 파싱 실패: %s", s)
}
