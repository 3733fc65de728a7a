package llm

import (
	"context"

	"github.com/yoonjw/maumlog/domain/repositories"
)

// MockGenerator is a canned text generator for tests.
type MockGenerator struct {
	// Reply is returned for every prompt when set.
	Reply string
	// Err is returned instead when set.
	Err error
	// Prompts records everything sent, for assertions.
	Prompts []string
}

// NewMockGenerator creates a mock that replies with a fixed, fully
// labeled annotation.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Reply: "감정: [중립]\n강도: 0.5\n분석: 테스트용 고정 응답입니다.\n추천답변: 말씀 잘 들었어요.",
	}
}

// Generate implements repositories.TextGenerator.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

var _ repositories.TextGenerator = (*MockGenerator)(nil)
