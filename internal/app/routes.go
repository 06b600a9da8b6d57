package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Board
	r.HandleFunc("/api/sheets", deps.BoardHandler.GetBoard).Methods("GET")
	r.HandleFunc("/api/calendar.ics", deps.BoardHandler.GetCalendar).Methods("GET")

	// Configuration panel
	r.HandleFunc("/api/admin/unlock", deps.AdminHandler.Unlock).Methods("POST")
	r.HandleFunc("/api/admin/refresh", deps.AdminHandler.Refresh).Methods("POST")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
}
