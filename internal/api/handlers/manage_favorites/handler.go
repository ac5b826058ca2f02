package manage_favorites

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glamly/BSP-SchedulingService/internal/api/handlers"
	"github.com/glamly/BSP-SchedulingService/internal/api/middleware"
	"github.com/glamly/BSP-SchedulingService/internal/service/clients"
)

const (
	msgInvalidClientID   = "некорректный ID клиента"
	msgInvalidProviderID = "некорректный ID мастера"
	msgClientNotFound    = "клиент не найден"
	msgProviderNotFound  = "мастер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/clients/{clientId}/favorites
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseID(w, r, "clientId", msgInvalidClientID, h.logger)
	if !ok {
		return
	}

	actorID := middleware.UserID(r.Context())

	resp, err := h.service.ListFavorites(r.Context(), clientID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /clients/{id}/favorites - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id}/favorites - Access denied: client_id=%d, user_id=%d", clientID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clients/{id}/favorites - Failed to list favorites: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/favorites - Favorites listed: client_id=%d, count=%d", clientID, len(resp.Favorites))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleAdd POST /api/v1/clients/{clientId}/favorites/{providerId}
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseID(w, r, "clientId", msgInvalidClientID, h.logger)
	if !ok {
		return
	}
	providerID, ok := parseID(w, r, "providerId", msgInvalidProviderID, h.logger)
	if !ok {
		return
	}

	actorID := middleware.UserID(r.Context())

	err := h.service.AddFavorite(r.Context(), clientID, providerID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("POST /clients/{id}/favorites/{providerId} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrProviderNotFound):
			h.logger.Warn("POST /clients/{id}/favorites/{providerId} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("POST /clients/{id}/favorites/{providerId} - Access denied: client_id=%d, user_id=%d",
				clientID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /clients/{id}/favorites/{providerId} - Failed to add favorite: client_id=%d, provider_id=%d, error=%v",
				clientID, providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/{id}/favorites/{providerId} - Favorite added: client_id=%d, provider_id=%d",
		clientID, providerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleRemove DELETE /api/v1/clients/{clientId}/favorites/{providerId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseID(w, r, "clientId", msgInvalidClientID, h.logger)
	if !ok {
		return
	}
	providerID, ok := parseID(w, r, "providerId", msgInvalidProviderID, h.logger)
	if !ok {
		return
	}

	actorID := middleware.UserID(r.Context())

	err := h.service.RemoveFavorite(r.Context(), clientID, providerID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("DELETE /clients/{id}/favorites/{providerId} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrAccessDenied):
			h.logger.Warn("DELETE /clients/{id}/favorites/{providerId} - Access denied: client_id=%d, user_id=%d",
				clientID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /clients/{id}/favorites/{providerId} - Failed to remove favorite: client_id=%d, provider_id=%d, error=%v",
				clientID, providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /clients/{id}/favorites/{providerId} - Favorite removed: client_id=%d, provider_id=%d",
		clientID, providerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func parseID(w http.ResponseWriter, r *http.Request, name, msg string, logger Logger) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		logger.Warn("%s %s - Invalid %s: %v", r.Method, r.URL.Path, name, err)
		handlers.RespondBadRequest(w, msg)
		return 0, false
	}
	return id, true
}
