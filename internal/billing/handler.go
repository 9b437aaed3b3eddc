// AngelaMos | 2026
// handler.go

package billing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carterperez-dev/garden-api/internal/core"
	"github.com/carterperez-dev/garden-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/create-checkout-session", h.CreateCheckoutSession)
		r.Post("/create-portal-session", h.CreatePortalSession)
		r.Get("/verify-premium", h.VerifyPremium)
	})
}

type sessionResponse struct {
	URL string `json:"url"`
}

type verifyPremiumResponse struct {
	IsPremium bool `json:"isPremium"`
}

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	url, err := h.service.Checkout(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, sessionResponse{URL: url})
}

func (h *Handler) CreatePortalSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	url, err := h.service.Portal(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, sessionResponse{URL: url})
}

func (h *Handler) VerifyPremium(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	isPremium, err := h.service.VerifyPremium(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, verifyPremiumResponse{IsPremium: isPremium})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoBillingAccount):
		core.JSONError(w, core.BadRequestError("no billing account; complete checkout first"))
	case errors.Is(err, core.ErrGateway):
		core.JSONError(w, core.GatewayErrorf("payment provider unavailable"))
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("user"))
	default:
		core.InternalServerError(w, err)
	}
}

func currentUserID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.GetUserID(r.Context()))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
