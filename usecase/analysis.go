// Package usecase orchestrates the annotation pipeline: text or
// transcripts in, annotated messages in the store out.
package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
)

// AnalysisService annotates free text and persists the result.
type AnalysisService struct {
	annotator repositories.EmotionAnnotator
	store     repositories.MessageRepository
	logger    *zap.Logger
}

// NewAnalysisService creates the service.
func NewAnalysisService(annotator repositories.EmotionAnnotator, store repositories.MessageRepository, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{annotator: annotator, store: store, logger: logger}
}

// Analyze annotates the text and saves the message. The message is
// returned even when persistence fails; the save error is logged and
// reported so the caller can warn without losing the annotation.
func (s *AnalysisService) Analyze(ctx context.Context, text, contactName string, persona entities.Persona) (*entities.Message, error) {
	result, err := s.annotator.Annotate(ctx, text, repositories.AnnotateOptions{
		Persona:     persona,
		ContactName: contactName,
	})
	if err != nil {
		return nil, err
	}
	if result.DecodeErr != nil {
		s.logger.Warn("annotation fell back to defaults", zap.Error(result.DecodeErr))
	}

	if err := s.store.Save(result.Message); err != nil {
		return result.Message, err
	}
	return result.Message, nil
}

// Profile generates a disposition summary for a contact from their
// stored history.
func (s *AnalysisService) Profile(ctx context.Context, contactName string, persona entities.Persona) (string, error) {
	history := s.store.ByContact(contactName, 0)
	return s.annotator.ContactProfile(ctx, history, contactName, persona)
}
