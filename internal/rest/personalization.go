package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"myStorefront/business/personalization"
	"myStorefront/domain"
	"myStorefront/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PersonalizationHandler struct {
		validate *validator.Validate
		service  PersonalizationService
		timeout  time.Duration
		now      func() time.Time
	}

	PersonalizationService interface {
		RecordAction(ctx context.Context, userID uint, env domain.SessionContext, in domain.ActionInput) (domain.ActionEvent, error)
		GetPreferences(ctx context.Context, userID uint, normalized bool) (domain.PreferenceModel, error)
		SetPriceRange(ctx context.Context, userID uint, r domain.PriceRange) error
		ReorderResults(ctx context.Context, userID uint, query string, results []domain.Item) ([]domain.Item, error)
		AssessChurn(ctx context.Context, userID uint) (domain.ChurnAssessment, error)
		Events(ctx context.Context, userID uint) ([]domain.ActionEvent, error)
		ExportSession(ctx context.Context, userID uint) (string, error)
		ImportSession(ctx context.Context, userID uint, token string) error
		EndSession(ctx context.Context, userID uint) error
	}

	ActionRequest struct {
		Type        string `json:"type" validate:"required,oneof=view click purchase search compare wishlist voice_command"`
		ItemID      string `json:"item_id"`
		Category    string `json:"category"`
		SearchQuery string `json:"search_query"`
		Page        string `json:"page"`
	}

	PreferencesQuery struct {
		Normalized bool `query:"normalized"`
	}

	PriceRangeRequest struct {
		Min float64 `json:"min" validate:"gte=0"`
		Max float64 `json:"max" validate:"gtefield=Min"`
	}

	ReorderRequest struct {
		Query   string        `json:"query"`
		Results []ItemRequest `json:"results" validate:"dive"`
	}

	ImportSessionRequest struct {
		Token string `json:"token" validate:"required"`
	}
)

func NewPersonalizationHandler(svc PersonalizationService) *PersonalizationHandler {
	return &PersonalizationHandler{
		validate: validator.New(),
		service:  svc,
		timeout:  10 * time.Second,
		now:      time.Now,
	}
}

// sessionContext derives the host environment of a new session from the
// request headers.
func (h *PersonalizationHandler) sessionContext(c echo.Context, page string) domain.SessionContext {
	req := c.Request()
	if page == "" {
		page = req.Header.Get("X-Page")
	}
	return domain.SessionContext{
		Page:     page,
		Device:   deviceFromUserAgent(req.UserAgent()),
		Language: primaryLanguage(req.Header.Get("Accept-Language")),
		Start:    h.now(),
	}
}

func deviceFromUserAgent(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case ua == "":
		return "unknown"
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "mobile"
	default:
		return "desktop"
	}
}

// primaryLanguage returns the first tag of an Accept-Language header.
func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}

// POST /api/v1/actions
func (h *PersonalizationHandler) RecordAction(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	in := domain.ActionInput{
		Type:        domain.ActionType(req.Type),
		ItemID:      req.ItemID,
		Category:    req.Category,
		SearchQuery: req.SearchQuery,
		Page:        req.Page,
	}

	ev, err := h.service.RecordAction(ctx, userID, h.sessionContext(c, req.Page), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownActionType) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to record action", "user_id", userID, err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(ev))
}

// GET /api/v1/actions
func (h *PersonalizationHandler) ListActions(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	events, err := h.service.Events(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

// GET /api/v1/preferences?normalized=true
func (h *PersonalizationHandler) GetPreferences(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q PreferencesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	prefs, err := h.service.GetPreferences(c.Request().Context(), userID, q.Normalized)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prefs))
}

// PUT /api/v1/preferences/price-range
func (h *PersonalizationHandler) SetPriceRange(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req PriceRangeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.service.SetPriceRange(c.Request().Context(), userID, domain.PriceRange{Min: req.Min, Max: req.Max}); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("price range updated"))
}

// POST /api/v1/search/reorder
func (h *PersonalizationHandler) Reorder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	out, err := h.service.ReorderResults(c.Request().Context(), userID, req.Query, toItems(req.Results))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}

// GET /api/v1/insights/churn
func (h *PersonalizationHandler) Churn(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	a, err := h.service.AssessChurn(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(a))
}

// GET /api/v1/session/export
func (h *PersonalizationHandler) ExportSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, err := h.service.ExportSession(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"token": token}))
}

// POST /api/v1/session/import
func (h *PersonalizationHandler) ImportSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ImportSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.service.ImportSession(c.Request().Context(), userID, req.Token); err != nil {
		if errors.Is(err, personalization.ErrInvalidExportToken) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("session imported"))
}

// DELETE /api/v1/session
func (h *PersonalizationHandler) EndSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.service.EndSession(c.Request().Context(), userID); err != nil {
		logger.Error("failed to end session", "user_id", userID, err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
