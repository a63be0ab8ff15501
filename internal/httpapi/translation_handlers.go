package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/translation"
)

func (s *Server) handleTranslationStatus(c echo.Context) error {
	fieldErrors := map[string]string{}
	kind, err := translation.ParseKind(c.QueryParam("kind"))
	if err != nil || !kind.IsRecordKind() {
		fieldErrors["kind"] = "unknown model kind"
	}
	id, err := parseID(c.QueryParam("id"))
	if err != nil {
		fieldErrors["id"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	lang := requestLanguage(c)
	status, err := s.translations.GetTranslationStatus(kind, id, lang)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind.String()).Int64("object_id", id).Msg("translation status failed")
		return internalError(c, "Failed to load translation status")
	}
	return success(c, map[string]any{
		"kind":     kind,
		"id":       id,
		"language": lang,
		"status":   status,
	})
}

func (s *Server) handleFrontendContent(c echo.Context) error {
	lang := requestLanguage(c)
	content := s.translations.GetAllFrontendContent(c.Request().Context(), lang)
	return success(c, map[string]any{
		"language": lang,
		"content":  content,
	})
}

type translationLogResponse struct {
	RunUUID         string  `json:"run_uuid"`
	TranslationType string  `json:"translation_type"`
	TargetLanguage  string  `json:"target_language"`
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	Logs            string  `json:"logs,omitempty"`
	ItemsProcessed  int     `json:"items_processed"`
	ItemsSuccess    int     `json:"items_success"`
	ItemsFailed     int     `json:"items_failed"`
	SuccessRate     float64 `json:"success_rate"`
	DurationSeconds float64 `json:"duration"`
	CreatedAt       string  `json:"created_at"`
}

func (s *Server) handleTranslationLogs(c echo.Context) error {
	limit, err := parsePositiveInt(c.QueryParam("limit"), 50, 1, maxPageSize)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	rows, err := s.store.ListTranslationLogs(c.Request().Context(), db.TranslationLogFilter{
		TranslationType: c.QueryParam("type"),
		TargetLanguage:  c.QueryParam("language"),
		Status:          c.QueryParam("status"),
		Limit:           limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("list translation logs failed")
		return internalError(c, "Failed to load translation logs")
	}

	withLogs := parseBool(c.QueryParam("include_logs"))
	items := make([]translationLogResponse, 0, len(rows))
	for _, row := range rows {
		item := translationLogResponse{
			RunUUID:         row.RunUUID,
			TranslationType: row.TranslationType,
			TargetLanguage:  row.TargetLanguage,
			Status:          string(row.Status),
			Message:         row.Message,
			ItemsProcessed:  row.ItemsProcessed,
			ItemsSuccess:    row.ItemsSuccess,
			ItemsFailed:     row.ItemsFailed,
			SuccessRate:     row.SuccessRate(),
			DurationSeconds: row.Duration.Seconds(),
			CreatedAt:       row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if withLogs {
			item.Logs = row.Logs
		}
		items = append(items, item)
	}
	return success(c, map[string]any{"items": items})
}

type runRequest struct {
	Kind     string `json:"kind"`
	Language string `json:"language"`
	Force    bool   `json:"force"`
}

func (r runRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.By(func(value any) error {
			raw, _ := value.(string)
			if strings.EqualFold(strings.TrimSpace(raw), translation.AllTargets) {
				return nil
			}
			if _, err := translation.ParseKind(raw); err != nil {
				return validation.NewError("translation.run.kind_unknown", "unknown model kind")
			}
			return nil
		})),
		validation.Field(&r.Language, validation.Required, validation.By(func(value any) error {
			raw, _ := value.(string)
			if strings.EqualFold(strings.TrimSpace(raw), translation.AllTargets) || language.IsTarget(language.Base(raw)) {
				return nil
			}
			return validation.NewError("translation.run.language_unsupported", "unsupported target language")
		})),
	)
}

// handleStartRun queues one batch run. Only one run executes at a time; the
// outcome lands in the translation log.
func (s *Server) handleStartRun(c echo.Context) error {
	var req runRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return failValidation(c, validationErrors(err))
	}
	if s.runner == nil {
		return internalError(c, "Batch translation is not configured")
	}

	s.runsMu.Lock()
	if s.runActive {
		s.runsMu.Unlock()
		return fail(c, http.StatusConflict, "A translation run is already in progress", nil)
	}
	s.runActive = true
	runCtx := s.runsCtx
	s.runsWaiter.Add(1)
	s.runsMu.Unlock()

	opts := translation.RunOptions{Kind: req.Kind, Language: req.Language, Force: req.Force}
	go s.executeRun(runCtx, opts)

	return successWithStatus(c, http.StatusAccepted, map[string]any{
		"kind":     strings.ToLower(strings.TrimSpace(req.Kind)),
		"language": strings.ToLower(strings.TrimSpace(req.Language)),
		"force":    req.Force,
	})
}

func (s *Server) executeRun(ctx context.Context, opts translation.RunOptions) {
	defer func() {
		s.runsMu.Lock()
		s.runActive = false
		s.runsMu.Unlock()
		s.runsWaiter.Done()
	}()

	entry, err := s.runner.Run(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Str("run_uuid", entry.RunUUID).Msg("translation run failed")
		return
	}
	s.logger.Info().
		Str("run_uuid", entry.RunUUID).
		Str("status", string(entry.Status)).
		Int("items_processed", entry.ItemsProcessed).
		Msg("translation run finished")
}

// handleTranslateObject re-translates one record into every active
// language, the hook the admin calls after saving a record.
func (s *Server) handleTranslateObject(c echo.Context) error {
	kind, err := translation.ParseKind(c.Param("kind"))
	if err != nil || !kind.IsRecordKind() {
		return failValidation(c, map[string]string{"kind": "unknown model kind"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return failValidation(c, map[string]string{"id": err.Error()})
	}

	ctx := c.Request().Context()
	record, err := s.store.GetTranslationRecord(ctx, kind, id)
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Record not found")
		}
		s.logger.Error().Err(err).Str("kind", kind.String()).Int64("object_id", id).Msg("load translation record failed")
		return internalError(c, "Failed to load record")
	}

	outcomes := s.translations.AutoTranslate(ctx, kind, record)
	return success(c, map[string]any{
		"kind":      kind,
		"id":        id,
		"languages": outcomes,
	})
}

func validationErrors(err error) map[string]string {
	out := map[string]string{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			out[field] = fieldErr.Error()
		}
		return out
	}
	out["body"] = err.Error()
	return out
}
