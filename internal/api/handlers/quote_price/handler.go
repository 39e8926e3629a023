package quote_price

import (
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDuration    = "Duration must be between 1 and 12 hours."
	msgInvalidRate        = "Price per hour must not be negative."
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle POST /api/v1/pricing/quote
// Публичный расчёт разбивки цены без сессии визарда
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.DurationHours <= 0 || req.DurationHours > domain.MaxDurationHours {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}
	if req.PricePerHour != nil && *req.PricePerHour < 0 {
		handlers.RespondBadRequest(w, msgInvalidRate)
		return
	}

	breakdown := pricing.Calculate(req.ToInput())
	handlers.RespondJSON(w, http.StatusOK, pricing.NewView(breakdown))
}
