package add_review

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
	msgInvalidProviderID  = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProviderNotFound   = "мастер не найден"
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

// Handle POST /api/v1/providers/{providerId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/reviews - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req AddReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	authorID := middleware.UserID(r.Context())

	result, err := h.service.AddReview(r.Context(), providerID, req.ToServiceRequest(authorID))
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/reviews - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, providers.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/reviews - Invalid review: provider_id=%d, author_id=%d, error=%v",
				providerID, authorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /providers/{id}/reviews - Failed to add review: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/reviews - Review added successfully: provider_id=%d, review_id=%d, author_id=%d",
		providerID, result.ID, authorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
