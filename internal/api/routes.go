// Package api exposes the annotation pipeline over HTTP.
package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/domain/entities"
	"github.com/yoonjw/maumlog/domain/repositories"
	"github.com/yoonjw/maumlog/internal/auth"
	"github.com/yoonjw/maumlog/usecase"
)

// Handlers bundles the dependencies shared by every route.
type Handlers struct {
	analysis  *usecase.AnalysisService
	importer  *usecase.TranscriptImporter
	store     repositories.MessageRepository
	extractor repositories.ImageTextExtractor
	pins      *auth.PinManager
	tokens    *auth.TokenIssuer
	logger    *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(
	analysis *usecase.AnalysisService,
	importer *usecase.TranscriptImporter,
	store repositories.MessageRepository,
	extractor repositories.ImageTextExtractor,
	pins *auth.PinManager,
	tokens *auth.TokenIssuer,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		analysis:  analysis,
		importer:  importer,
		store:     store,
		extractor: extractor,
		pins:      pins,
		tokens:    tokens,
		logger:    logger,
	}
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handlers) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "maumlog-server",
		})
	})

	v1 := e.Group("/api/v1")

	// App lock APIs
	v1.GET("/auth/pin", h.pinStatus)
	v1.POST("/auth/pin", h.pinSetup)
	v1.POST("/auth/unlock", h.unlock)

	// Everything below requires an unlocked session once a PIN exists.
	protected := v1.Group("", h.sessionAuth)

	protected.DELETE("/auth/pin", h.pinReset)

	// Analysis APIs
	protected.POST("/messages/analyze", h.analyzeText)
	protected.POST("/transcripts/import", h.importTranscript)
	protected.POST("/screenshots/analyze", h.analyzeScreenshot)

	// History APIs
	protected.GET("/messages", h.listMessages)
	protected.GET("/messages/recent", h.recentMessages)
	protected.DELETE("/messages", h.clearMessages)
	protected.GET("/contacts", h.listContacts)
	protected.POST("/contacts/:name/profile", h.contactProfile)

	// Statistics APIs
	protected.GET("/stats/daily", h.dailyStats)
	protected.GET("/stats/summary", h.statsSummary)
}

// sessionAuth gates routes behind the app lock. Routes stay open until
// a PIN has been set; after that a valid session token is required.
func (h *Handlers) sessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.pins.IsSet() {
			return next(c)
		}

		var token string
		header := c.Request().Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "missing_token",
				Message: "세션 토큰이 필요합니다",
			})
		}

		if _, err := h.tokens.ValidateToken(token); err != nil {
			h.logger.Warn("session token rejected", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "세션 토큰이 유효하지 않거나 만료되었습니다",
			})
		}
		return next(c)
	}
}

func (h *Handlers) pinStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"pin_set": h.pins.IsSet()})
}

func (h *Handlers) pinSetup(c echo.Context) error {
	var req PinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}
	if h.pins.IsSet() {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "pin_already_set",
			Message: "PIN이 이미 설정되어 있습니다",
		})
	}
	if err := h.pins.Set(req.Pin); err != nil {
		if errors.Is(err, auth.ErrInvalidPin) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_pin",
				Message: "PIN은 4자리 숫자여야 합니다",
			})
		}
		h.logger.Error("failed to store pin", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "pin_store_failed",
			Message: "PIN 저장에 실패했습니다",
		})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"pin_set": true})
}

func (h *Handlers) unlock(c echo.Context) error {
	var req PinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}
	if !h.pins.IsSet() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "pin_not_set",
			Message: "PIN이 설정되어 있지 않습니다",
		})
	}
	if !h.pins.Verify(req.Pin) {
		h.logger.Warn("pin unlock failed")
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "wrong_pin",
			Message: "PIN이 일치하지 않습니다",
		})
	}

	token, err := h.tokens.IssueSessionToken()
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "세션 토큰 발급에 실패했습니다",
		})
	}
	return c.JSON(http.StatusOK, UnlockResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.TTL()),
	})
}

func (h *Handlers) pinReset(c echo.Context) error {
	if err := h.pins.Reset(); err != nil {
		h.logger.Error("failed to reset pin", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "pin_reset_failed",
			Message: "PIN 초기화에 실패했습니다",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handlers) analyzeText(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}

	persona := entities.PersonaFromString(req.MBTI)
	msg, err := h.analysis.Analyze(c.Request().Context(), req.Text, req.ContactName, persona)
	if err != nil {
		if msg != nil {
			// annotation succeeded but persistence failed; return the
			// result and let the client know it was not saved
			h.logger.Error("annotation not persisted", zap.Error(err))
			return c.JSON(http.StatusOK, toMessageResponse(msg))
		}
		return h.annotationError(c, err)
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (h *Handlers) importTranscript(c echo.Context) error {
	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}

	persona := entities.PersonaFromString(req.MBTI)
	result, err := h.importer.Import(c.Request().Context(), req.Transcript, persona)
	if err != nil {
		if errors.Is(err, usecase.ErrNoCounterpartMessages) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "no_counterpart_messages",
				Message: err.Error(),
			})
		}
		return h.annotationError(c, err)
	}
	return c.JSON(http.StatusOK, toImportResponse(result))
}

func (h *Handlers) analyzeScreenshot(c echo.Context) error {
	var req ScreenshotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(image) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_image",
			Message: "이미지 데이터를 해석할 수 없습니다",
		})
	}

	text, err := h.extractor.ExtractScreenshotText(c.Request().Context(), image, req.MimeType)
	if err != nil {
		return h.annotationError(c, err)
	}

	persona := entities.PersonaFromString(req.MBTI)
	msg, err := h.analysis.Analyze(c.Request().Context(), text, req.ContactName, persona)
	if err != nil {
		if msg != nil {
			h.logger.Error("annotation not persisted", zap.Error(err))
			return c.JSON(http.StatusOK, toMessageResponse(msg))
		}
		return h.annotationError(c, err)
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (h *Handlers) listMessages(c echo.Context) error {
	if date := c.QueryParam("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_date",
				Message: "날짜는 YYYY-MM-DD 형식이어야 합니다",
			})
		}
		return c.JSON(http.StatusOK, toMessageResponses(h.store.ByDate(day)))
	}

	if name := c.QueryParam("emotion"); name != "" {
		emotion, ok := entities.EmotionFromName(name)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_emotion",
				Message: "알 수 없는 감정 분류입니다",
			})
		}
		return c.JSON(http.StatusOK, toMessageResponses(h.store.ByEmotion(emotion)))
	}

	if contact := c.QueryParam("contact"); contact != "" {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		return c.JSON(http.StatusOK, toMessageResponses(h.store.ByContact(contact, limit)))
	}

	return c.JSON(http.StatusOK, toMessageResponses(h.store.All()))
}

func (h *Handlers) recentMessages(c echo.Context) error {
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count <= 0 {
		count = 10
	}
	return c.JSON(http.StatusOK, toMessageResponses(h.store.Recent(count)))
}

func (h *Handlers) clearMessages(c echo.Context) error {
	if err := h.store.Clear(); err != nil {
		h.logger.Error("failed to clear message store", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "clear_failed",
			Message: "데이터 삭제에 실패했습니다",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handlers) listContacts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"contacts": h.store.ContactNames()})
}

func (h *Handlers) contactProfile(c echo.Context) error {
	name := c.Param("name")

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "요청 형식이 올바르지 않습니다",
		})
	}

	persona := entities.PersonaFromString(req.MBTI)
	profile, err := h.analysis.Profile(c.Request().Context(), name, persona)
	if err != nil {
		return h.annotationError(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{ContactName: name, Profile: profile})
}

func (h *Handlers) dailyStats(c echo.Context) error {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil || days <= 0 {
		days = 7
	}

	stats := h.store.DailyEmotionStats(days)
	out := make([]DailyStatResponse, 0, len(stats))
	for _, s := range stats {
		counts := make(map[string]int, len(s.Counts))
		for emotion, n := range s.Counts {
			counts[string(emotion)] = n
		}
		out = append(out, DailyStatResponse{
			Date:   s.Date.Format("2006-01-02"),
			Counts: counts,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) statsSummary(c echo.Context) error {
	distribution := make(map[string]int)
	for emotion, n := range h.store.EmotionDistribution() {
		distribution[string(emotion)] = n
	}
	return c.JSON(http.StatusOK, StatsSummaryResponse{
		TotalMessages:       h.store.TotalCount(),
		TodayMessages:       h.store.TodayCount(),
		MostFrequentEmotion: string(h.store.MostFrequentEmotion()),
		AverageIntensity:    h.store.AverageIntensity(),
		Distribution:        distribution,
	})
}

// annotationError maps pipeline errors to HTTP responses.
func (h *Handlers) annotationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrEmptyText):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "empty_text",
			Message: err.Error(),
		})
	case errors.Is(err, repositories.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:   "rate_limited",
			Message: err.Error(),
		})
	case errors.Is(err, repositories.ErrUnauthorized):
		h.logger.Error("model call rejected", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "model_unauthorized",
			Message: err.Error(),
		})
	default:
		h.logger.Error("annotation failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "annotation_failed",
			Message: "감정 분석에 실패했습니다",
		})
	}
}
