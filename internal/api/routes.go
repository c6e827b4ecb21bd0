package api

import "github.com/gorilla/mux"

// NewRouter builds the HTTP route table
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.health).Methods("GET")
	router.HandleFunc("/metrics", h.metrics).Methods("GET")
	router.HandleFunc("/trigger", h.trigger).Methods("POST")

	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/analyze", h.analyze).Methods("POST")

	v1.HandleFunc("/formats/learn", h.learn).Methods("POST")
	v1.HandleFunc("/formats/learn/batch", h.learnBatch).Methods("POST")
	v1.HandleFunc("/formats/match", h.match).Methods("POST")

	// Fixed paths before the {id} wildcard
	v1.HandleFunc("/formats/stats", h.stats).Methods("GET")
	v1.HandleFunc("/formats/export", h.exportFormats).Methods("GET")
	v1.HandleFunc("/formats/import", h.importFormats).Methods("POST")

	v1.HandleFunc("/formats", h.listFormats).Methods("GET")
	v1.HandleFunc("/formats", h.deleteFormats).Methods("DELETE")
	v1.HandleFunc("/formats/{id}", h.getFormat).Methods("GET")
	v1.HandleFunc("/formats/{id}", h.updateFormat).Methods("PATCH")
	v1.HandleFunc("/formats/{id}", h.deleteFormat).Methods("DELETE")

	v1.HandleFunc("/drafts", h.createDraft).Methods("POST")

	return router
}
