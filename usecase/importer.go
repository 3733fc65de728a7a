package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/adapters/kakao"
	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

// ErrNoCounterpartMessages means the transcript parsed but contained
// nothing from the counterpart to analyze.
var ErrNoCounterpartMessages = errors.New("분석할 상대방 메시지가 없습니다")

// ImportResult summarizes one transcript import.
type ImportResult struct {
	ImportID      string
	TotalMessages int
	Primary       string
	Counterpart   string
	SpeakerCounts map[string]int
	// Analyzed is the annotation of the most recent counterpart
	// message, produced with the trailing conversation as context.
	Analyzed *entities.Message
}

// TranscriptImporter parses chat exports and feeds the counterpart's
// latest message through the annotation pipeline.
type TranscriptImporter struct {
	parser        *kakao.Parser
	annotator     repositories.EmotionAnnotator
	store         repositories.MessageRepository
	contextWindow int
	logger        *zap.Logger
}

// NewTranscriptImporter creates the importer. contextWindow bounds how
// many trailing utterances are rendered as prompt context.
func NewTranscriptImporter(parser *kakao.Parser, annotator repositories.EmotionAnnotator, store repositories.MessageRepository, contextWindow int, logger *zap.Logger) *TranscriptImporter {
	if contextWindow <= 0 {
		contextWindow = 10
	}
	return &TranscriptImporter{
		parser:        parser,
		annotator:     annotator,
		store:         store,
		contextWindow: contextWindow,
		logger:        logger,
	}
}

// Import parses the transcript, annotates the most recent counterpart
// message using the trailing conversation as context, and persists the
// annotation under the counterpart's name.
func (t *TranscriptImporter) Import(ctx context.Context, transcript string, persona entities.Persona) (*ImportResult, error) {
	conv, err := t.parser.ParseString(transcript)
	if err != nil {
		return nil, err
	}

	importID := uuid.NewString()
	result := &ImportResult{
		ImportID:      importID,
		TotalMessages: len(conv.Utterances),
		Primary:       conv.Primary,
		Counterpart:   conv.Counterpart,
		SpeakerCounts: make(map[string]int),
	}
	for _, speaker := range conv.Speakers() {
		result.SpeakerCounts[speaker] = conv.SpeakerCount(speaker)
	}

	received := conv.Received()
	if len(received) == 0 {
		return nil, ErrNoCounterpartMessages
	}
	target := received[len(received)-1]

	t.logger.Info("transcript imported",
		zap.String("import_id", importID),
		zap.Int("messages", result.TotalMessages),
		zap.String("counterpart", conv.Counterpart))

	annotated, err := t.annotator.Annotate(ctx, target.Text, repositories.AnnotateOptions{
		ConversationContext: conv.ContextWindow(t.contextWindow),
		Persona:             persona,
		ContactName:         conv.Counterpart,
	})
	if err != nil {
		return nil, err
	}
	if annotated.DecodeErr != nil {
		t.logger.Warn("transcript annotation fell back to defaults",
			zap.String("import_id", importID),
			zap.Error(annotated.DecodeErr))
	}

	if err := t.store.Save(annotated.Message); err != nil {
		return nil, err
	}
	result.Analyzed = annotated.Message
	return result, nil
}
