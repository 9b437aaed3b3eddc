// AngelaMos | 2026
// handler.go

package garden

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/garden-api/internal/core"
	"github.com/carterperez-dev/garden-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/catalog", h.Catalog)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/load", h.Load)
		r.Post("/sync", h.Sync)
		r.Post("/buy", h.Buy)
		r.Post("/reward", h.Reward)
		r.Post("/habit-toggle", h.ToggleHabit)
		r.Get("/stats", h.Stats)
	})
}

func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	acct, err := h.service.Load(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, LoadResponse{Data: acct.Blob, IsPremium: acct.Premium})
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	blob, err := decodeSyncBody(r)
	if err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	acct, err := h.service.Sync(r.Context(), userID, blob)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, SyncResponse{Saved: true, FixedData: acct.Blob})
}

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.Buy(r.Context(), userID, req.ItemID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, BuyResponse{
		Coins:         acct.Blob.Coins,
		UnlockedItems: acct.Blob.UnlockedItems,
	})
}

func (h *Handler) Reward(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	var req RewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, granted, err := h.service.GrantReward(r.Context(), userID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	slog.Debug("reward granted",
		"user_id", userID,
		"source", req.Source,
		"requested", req.Amount,
		"granted", granted,
	)

	core.OK(w, RewardResponse{Coins: acct.Blob.Coins, Granted: granted})
}

func (h *Handler) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	var req ToggleHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, checked, err := h.service.ToggleHabit(r.Context(), userID, req.HabitID, req.Date)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToggleHabitResponse{Coins: acct.Blob.Coins, Checked: checked})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		core.JSONError(w, core.UnauthorizedError("authentication required"))
		return
	}

	var (
		year  int
		month time.Month
	)
	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			core.BadRequest(w, "month must be formatted as YYYY-MM")
			return
		}
		year, month = t.Year(), t.Month()
	}

	stats, err := h.service.Stats(r.Context(), userID, year, month)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, StatsResponse{Habits: stats})
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	core.OK(w, CatalogResponse{Items: Catalog()})
}

// decodeSyncBody reads the garden blob posted by the client. The body is
/// the blob itself; a `{"data": <blob>}` wrapper is also accepted so older
// callers keep working without silently wiping their garden.
func decodeSyncBody(r *http.Request) (Blob, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return Blob{}, err
	}

	var wrapper struct {
		Data *Blob `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Data != nil {
		return *wrapper.Data, nil
	}

	var blob Blob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return Blob{}, err
	}
	return blob, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownItem):
		core.JSONError(w, core.NewAppError(err, "item not in catalog", http.StatusBadRequest, "UNKNOWN_ITEM"))
	case errors.Is(err, ErrAlreadyOwned):
		core.JSONError(w, core.NewAppError(err, "item already owned", http.StatusBadRequest, "ALREADY_OWNED"))
	case errors.Is(err, ErrInsufficientFunds):
		core.JSONError(w, core.NewAppError(err, "not enough coins", http.StatusBadRequest, "INSUFFICIENT_FUNDS"))
	case errors.Is(err, ErrPremiumRequired):
		core.JSONError(w, core.NewAppError(err, "premium subscription required", http.StatusForbidden, "PREMIUM_REQUIRED"))
	case errors.Is(err, ErrSlotLimit):
		core.JSONError(w, core.NewAppError(err, "free plant slots exhausted", http.StatusForbidden, "SLOT_LIMIT"))
	case errors.Is(err, ErrHabitNotFound):
		core.JSONError(w, core.NotFoundError("habit"))
	case errors.Is(err, ErrFutureDate):
		core.JSONError(w, core.NewAppError(err, "cannot mark a future date", http.StatusBadRequest, "FUTURE_DATE"))
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
