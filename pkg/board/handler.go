package board

import (
	"errors"
	"net/http"

	"github.com/arboleda/arboleda/internal/rest"
	"github.com/arboleda/arboleda/pkg/agenda"
	"github.com/arboleda/arboleda/pkg/records"
	log "github.com/sirupsen/logrus"
)

const (
	msgNotConfigured = "Configura la planilla: ARBOLEDA_SHEETS_SPREADSHEETID y la cuenta de servicio de Google (ARBOLEDA_SHEETS_CREDENTIALSJSON o GOOGLE_SERVICE_ACCOUNT_JSON)."
	msgSourceFailed  = "No se pudo leer la planilla. Revisa que la cuenta de servicio tenga acceso (comparte la hoja con su email)."
)

type Handler struct {
	board *Service
}

type BoardDTO struct {
	Retreats       []agenda.Retreat  `json:"retirosProximos"`
	MonthLabel     *string           `json:"mesRetirosLabel"`
	Circles        []records.Record  `json:"ces"`
	Activities     []records.Record  `json:"crtCv"`
	Birthdays      []agenda.Birthday `json:"cumpleanosProximos"`
	ActivityViews  []ActivityView    `json:"actividades"`
	CircleViews    []CircleView      `json:"circulos"`
	OtherDatesLink string            `json:"otrasFechasLink,omitempty"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.board.Board(r.Context())
	if err != nil {
		writeSourceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, boardToDTO(b))
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	feed, err := h.board.Calendar(r.Context())
	if err != nil {
		writeSourceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(feed); err != nil {
		log.Errorf("failed to write calendar feed: %v", err)
	}
}

func writeSourceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSourceNotConfigured) {
		rest.WriteError(w, http.StatusServiceUnavailable, msgNotConfigured)
		return
	}
	log.Errorf("Failed to build board: %v", err)
	rest.WriteError(w, http.StatusBadGateway, msgSourceFailed)
}

func boardToDTO(b Board) BoardDTO {
	return BoardDTO{
		Retreats:       nonNil(b.Retreats),
		MonthLabel:     b.MonthLabel,
		Circles:        nonNil(b.Circles),
		Activities:     nonNil(b.Activities),
		Birthdays:      nonNil(b.Birthdays),
		ActivityViews:  nonNil(b.ActivityViews),
		CircleViews:    nonNil(b.CircleViews),
		OtherDatesLink: b.OtherDatesLink,
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
