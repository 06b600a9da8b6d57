package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arboleda/arboleda/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

type PasswordDTO struct {
	Password string `json:"password"`
}

type RefreshedDTO struct {
	Refreshed bool `json:"refreshed"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	password, ok := decodePassword(w, r)
	if !ok {
		return
	}
	panel, err := h.service.Unlock(r.Context(), password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, panel)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	password, ok := decodePassword(w, r)
	if !ok {
		return
	}
	if err := h.service.Refresh(r.Context(), password); err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, RefreshedDTO{Refreshed: true})
}

func decodePassword(w http.ResponseWriter, r *http.Request) (string, bool) {
	var dto PasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid request body",
			Details: "expected {\"password\": \"...\"}",
		})
		return "", false
	}
	return dto.Password, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPanelDisabled):
		rest.WriteError(w, http.StatusNotFound, "Panel de configuración no disponible")
	case errors.Is(err, ErrWrongPassword):
		rest.WriteError(w, http.StatusUnauthorized, "Contraseña incorrecta")
	default:
		log.Errorf("Admin request failed: %v", err)
		rest.WriteJSON(w, http.StatusBadGateway, rest.ErrorResponse{
			Error:   "No se pudo completar la operación",
			Details: err.Error(),
		})
	}
}
