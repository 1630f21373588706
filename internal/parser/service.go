package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/storage/object"
	"resume-parser/internal/shared/telemetry"
)

// UsageRecorder persists per-user parse accounting.
type UsageRecorder interface {
	Record(ctx context.Context, userID string, promptTokens, completionTokens, totalTokens int) error
}

// Service runs the resume extraction pipeline.
type Service struct {
	llm     llm.Client
	usage   UsageRecorder
	archive object.ObjectStore

	background sync.WaitGroup
}

// NewService constructs the extraction service. archive may be nil when no
// object store is configured; uploads are then not retained.
func NewService(client llm.Client, usage UsageRecorder, archive object.ObjectStore) *Service {
	return &Service{
		llm:     client,
		usage:   usage,
		archive: archive,
	}
}

// Extract normalizes the request to resume text, prompts the model and
// returns the structured record. Usage accounting and upload archival run
// in the background and never delay or fail the response.
func (s *Service) Extract(ctx context.Context, req Request) (json.RawMessage, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUnauthenticated
	}

	attemptID := uuid.NewString()
	metrics.IncParseStarted()
	started := time.Now()

	text, err := extract.Normalize(ctx, extract.Input{
		Text:     req.Text,
		File:     req.File,
		MimeType: req.MimeType,
		FileName: req.FileName,
	})
	if err != nil {
		metrics.IncParseFailed()
		return nil, err
	}

	if s.archive != nil && len(req.File) > 0 {
		s.archiveUpload(ctx, attemptID, req, text)
	}

	schemaBlock, fieldsNote := ResolveSchema(req.CustomSchema, req.CustomFields)
	prompt := BuildPrompt(schemaBlock, fieldsNote, text)

	completion, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		metrics.IncParseFailed()
		return nil, err
	}

	// The backend answered, so its token spend is real even if the
	// output turns out to be unusable.
	s.dispatchUsage(ctx, attemptID, req.UserID, completion.Usage)

	record, err := SanitizeCompletion(completion.Content)
	if err != nil {
		metrics.IncParseFailed()
		return nil, err
	}

	metrics.IncParseCompleted()
	metrics.ObserveParseDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("parse.complete", map[string]any{
		"attempt_id":  attemptID,
		"user_id":     req.UserID,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return record, nil
}

// Wait blocks until all background work has finished. Used during shutdown
// and by tests.
func (s *Service) Wait() {
	s.background.Wait()
}

func (s *Service) dispatchUsage(ctx context.Context, attemptID, userID string, usage *llm.TokenUsage) {
	if s.usage == nil {
		return
	}

	var prompt, completion, total int
	if usage != nil {
		prompt = usage.PromptTokens
		completion = usage.CompletionTokens
		total = usage.TotalTokens
	}

	detached := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		recordCtx, cancel := context.WithTimeout(detached, 10*time.Second)
		defer cancel()
		if err := s.usage.Record(recordCtx, userID, prompt, completion, total); err != nil {
			telemetry.Error("stats.record_failed", map[string]any{
				"attempt_id": attemptID,
				"user_id":    userID,
				"error":      err.Error(),
			})
		}
	}()
}

func (s *Service) archiveUpload(ctx context.Context, attemptID string, req Request, text string) {
	detached := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		saveCtx, cancel := context.WithTimeout(detached, 30*time.Second)
		defer cancel()

		key, size, mimeType, err := s.archive.Save(saveCtx, req.UserID, req.FileName, bytes.NewReader(req.File))
		if err != nil {
			telemetry.Error("parse.archive_failed", map[string]any{
				"attempt_id": attemptID,
				"user_id":    req.UserID,
				"file_name":  req.FileName,
				"error":      err.Error(),
			})
			return
		}

		if _, err := s.archive.SaveWithKey(saveCtx, key+".extracted.txt", "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
			telemetry.Error("parse.archive_failed", map[string]any{
				"attempt_id":  attemptID,
				"user_id":     req.UserID,
				"storage_key": key,
				"error":       err.Error(),
			})
			return
		}

		telemetry.Info("parse.archived", map[string]any{
			"attempt_id":  attemptID,
			"user_id":     req.UserID,
			"storage_key": key,
			"size_bytes":  size,
			"mime_type":   mimeType,
		})
	}()
}
