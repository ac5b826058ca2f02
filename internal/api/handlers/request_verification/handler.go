package request_verification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamly/BSP-SchedulingService/internal/api/handlers"
	"github.com/glamly/BSP-SchedulingService/internal/api/middleware"
	"github.com/glamly/BSP-SchedulingService/internal/service/providers"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgNotFound          = "мастер не найден"
	msgForbidden         = "доступ запрещен"
	msgNotEligible       = "недостаточно отзывов или слишком низкий рейтинг"
	msgAlreadyVerified   = "мастер уже верифицирован"
	msgAlreadyRequested  = "запрос на верификацию уже отправлен"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/verification-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/verification-request - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actorID := middleware.UserID(r.Context())

	err = h.service.RequestVerification(r.Context(), providerID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/verification-request - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, providers.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/verification-request - Access denied: provider_id=%d, user_id=%d",
				providerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, providers.ErrNotEligible):
			h.logger.Warn("POST /providers/{id}/verification-request - Not eligible: provider_id=%d", providerID)
			handlers.RespondConflict(w, msgNotEligible)

		case errors.Is(err, providers.ErrAlreadyVerified):
			h.logger.Warn("POST /providers/{id}/verification-request - Already verified: provider_id=%d", providerID)
			handlers.RespondConflict(w, msgAlreadyVerified)

		case errors.Is(err, providers.ErrAlreadyRequested):
			h.logger.Warn("POST /providers/{id}/verification-request - Already requested: provider_id=%d", providerID)
			handlers.RespondConflict(w, msgAlreadyRequested)

		default:
			h.logger.Error("POST /providers/{id}/verification-request - Failed to request verification: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/verification-request - Verification requested successfully: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusAccepted, nil)
}
