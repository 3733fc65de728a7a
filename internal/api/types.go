package api

import (
	"time"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/usecase"
)

// ErrorResponse is the JSON envelope for every failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PinRequest carries a 4-digit PIN for setup or unlock.
type PinRequest struct {
	Pin string `json:"pin"`
}

// UnlockResponse returns the session token issued after PIN unlock.
type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AnalyzeRequest asks for an emotion annotation of free text.
type AnalyzeRequest struct {
	Text        string `json:"text"`
	ContactName string `json:"contact_name"`
	MBTI        string `json:"mbti"`
}

// ImportRequest carries a raw transcript export.
type ImportRequest struct {
	Transcript string `json:"transcript"`
	MBTI       string `json:"mbti"`
}

// ScreenshotRequest carries a base64-encoded chat screenshot.
type ScreenshotRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	ContactName string `json:"contact_name"`
	MBTI        string `json:"mbti"`
}

// ProfileRequest asks for a contact disposition summary.
type ProfileRequest struct {
	MBTI string `json:"mbti"`
}

// MessageResponse is the JSON form of an annotated message.
type MessageResponse struct {
	Content        string  `json:"content"`
	Emotion        string  `json:"emotion"`
	EmotionLabel   string  `json:"emotion_label"`
	Emoji          string  `json:"emoji"`
	Intensity      float64 `json:"intensity"`
	IntensityLevel string  `json:"intensity_level"`
	SuggestedReply string  `json:"suggested_reply"`
	Timestamp      string  `json:"timestamp"`
	ContactName    string  `json:"contact_name"`
}

func toMessageResponse(m *entities.Message) MessageResponse {
	return MessageResponse{
		Content:        m.Content,
		Emotion:        string(m.Emotion),
		EmotionLabel:   m.Emotion.Korean(),
		Emoji:          m.Emotion.Emoji(),
		Intensity:      m.Intensity(),
		IntensityLevel: m.IntensityLevel(),
		SuggestedReply: m.SuggestedReply,
		Timestamp:      m.Timestamp.Format("2006-01-02 15:04:05"),
		ContactName:    m.ContactName(),
	}
}

func toMessageResponses(messages []*entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	return out
}

// ImportResponse summarizes a transcript import.
type ImportResponse struct {
	ImportID      string          `json:"import_id"`
	TotalMessages int             `json:"total_messages"`
	Primary       string          `json:"primary"`
	Counterpart   string          `json:"counterpart"`
	SpeakerCounts map[string]int  `json:"speaker_counts"`
	Analyzed      MessageResponse `json:"analyzed"`
}

func toImportResponse(r *usecase.ImportResult) ImportResponse {
	return ImportResponse{
		ImportID:      r.ImportID,
		TotalMessages: r.TotalMessages,
		Primary:       r.Primary,
		Counterpart:   r.Counterpart,
		SpeakerCounts: r.SpeakerCounts,
		Analyzed:      toMessageResponse(r.Analyzed),
	}
}

// DailyStatResponse is one day of the emotion histogram.
type DailyStatResponse struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// StatsSummaryResponse aggregates the whole store.
type StatsSummaryResponse struct {
	TotalMessages       int            `json:"total_messages"`
	TodayMessages       int            `json:"today_messages"`
	MostFrequentEmotion string         `json:"most_frequent_emotion"`
	AverageIntensity    float64        `json:"average_intensity"`
	Distribution        map[string]int `json:"distribution"`
}

// ProfileResponse carries a generated contact profile.
type ProfileResponse struct {
	ContactName string `json:"contact_name"`
	Profile     string `json:"profile"`
}
