package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jsantoso/fareview/internal/cache"
	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/provider"
	"github.com/jsantoso/fareview/internal/search"
	"github.com/jsantoso/fareview/internal/session"
	"github.com/jsantoso/fareview/internal/view"
)

type Handler struct {
	store    *session.Store
	runner   *search.Runner
	provider provider.Provider
	cache    cache.Cache
	views    *view.Builder
}

func New(store *session.Store, runner *search.Runner, p provider.Provider, c cache.Cache, views *view.Builder) *Handler {
	return &Handler{
		store:    store,
		runner:   runner,
		provider: p,
		cache:    c,
		views:    views,
	}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/sessions", h.CreateSession)
	g.GET("/sessions/:id", h.GetSession)
	g.POST("/sessions/:id/search", h.SubmitSearch)
	g.POST("/sessions/:id/selection", h.ToggleSelection)
	g.GET("/airports", h.ListAirports)
}

func (h *Handler) CreateSession(c echo.Context) error {
	sess := h.store.Create()
	return c.JSON(http.StatusCreated, h.views.Session(sess.ID(), sess.Snapshot()))
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(http.StatusOK, h.views.Session(sess.ID(), sess.Snapshot()))
}

func (h *Handler) SubmitSearch(c echo.Context) error {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	criteria.Normalize()

	seq, err := sess.Submit(criteria)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	// Resolved off the request context: the page polls for the outcome, and
	// a superseding submit makes this one's result stale, not cancelled.
	go h.runner.Run(context.Background(), sess, seq, criteria)

	return c.JSON(http.StatusAccepted, h.views.Session(sess.ID(), sess.Snapshot()))
}

type selectionRequest struct {
	OfferID string `json:"offer_id"`
}

func (h *Handler) ToggleSelection(c echo.Context) error {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		return sessionNotFound(c)
	}

	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := sess.ToggleSelection(req.OfferID); err != nil {
		status := http.StatusConflict
		if errors.Is(err, session.ErrUnknownOffer) {
			status = http.StatusNotFound
		}
		return c.JSON(status, models.ErrorResponse{
			Error:   "selection_error",
			Message: err.Error(),
			Code:    status,
		})
	}

	return c.JSON(http.StatusOK, h.views.Session(sess.ID(), sess.Snapshot()))
}

func (h *Handler) ListAirports(c echo.Context) error {
	ctx := c.Request().Context()

	if airports, ok := h.cache.GetAirports(ctx); ok {
		return c.JSON(http.StatusOK, models.AirportsResponse{Airports: airports, CacheHit: true})
	}

	airports, err := h.provider.ListAirports(ctx)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_error",
			Message: "Failed to fetch airports: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	_ = h.cache.SetAirports(ctx, airports)
	return c.JSON(http.StatusOK, models.AirportsResponse{Airports: airports, CacheHit: false})
}

func sessionNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "session_not_found",
		Message: "Unknown or expired session",
		Code:    http.StatusNotFound,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
