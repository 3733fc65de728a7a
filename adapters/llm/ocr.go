package llm

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yoonjw/maumlog/domain/repositories"
)

// screenshotPrompt instructs the model to transcribe a messenger
// screenshot into speaker-labeled lines.
const screenshotPrompt = "이 이미지는 메신저 대화 스크린샷입니다.\n\n" +
	"⚠️ 다음 규칙에 따라 분석하세요:\n\n" +
	"1. 말풍선의 색상과 위치를 보고 '나'와 '상대방'을 구분하세요\n" +
	"   - 보통 오른쪽 정렬 = 나, 왼쪽 정렬 = 상대방\n" +
	"   - 색상이 다른 말풍선 = 다른 발신자\n\n" +
	"2. 대화 내용을 시간 순서대로 파싱하세요\n\n" +
	"3. 각 메시지를 다음 형식으로 출력하세요:\n" +
	"   [나] 메시지내용\n" +
	"   [상대방] 메시지내용\n\n" +
	"4. 만약 구분이 어려우면, 가장 최근(아래쪽)의 메시지만 출력하되\n" +
	"   발신자 구분 없이 메시지 내용만 출력하세요\n\n" +
	"5. 텍스트가 없으면 '텍스트 없음'이라고만 출력하세요"

// ExtractScreenshotText sends a chat screenshot through the vision
// model and returns the transcribed conversation text.
func (g *Gemini) ExtractScreenshotText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(screenshotPrompt),
		genai.NewPartFromBytes(image, mimeType),
	}, genai.RoleUser)

	response, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", g.classify(err)
	}

	text := strings.TrimSpace(responseText(response))
	if text == "" {
		return "", repositories.ErrEmptyReply
	}
	return text, nil
}
