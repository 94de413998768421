// Package api exposes the drill core over HTTP to UI layers. It only shuttles
// field snapshots in and statuses out; all grading semantics live in the root
// package.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	drill "github.com/o-ludvik/Olivers-pages"
	"github.com/o-ludvik/Olivers-pages/internal/store"
)

// Server handles HTTP requests for the drill API.
type Server struct {
	store *store.Store
	addr  string
}

// New creates a new API server.
func New(s *store.Store, addr string) *Server {
	return &Server{store: s, addr: addr}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Stateless core operations
	mux.HandleFunc("POST /eval", s.evalExpression)
	mux.HandleFunc("POST /check", s.checkEquation)
	mux.HandleFunc("POST /grade", s.gradeFields)

	// Stored sheets
	mux.HandleFunc("GET /sheets", s.listSheets)
	mux.HandleFunc("POST /sheets", s.createSheet)
	mux.HandleFunc("GET /sheets/{id}", s.getSheet)
	mux.HandleFunc("DELETE /sheets/{id}", s.deleteSheet)
	mux.HandleFunc("POST /sheets/{id}/grade", s.gradeSheet)

	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// withCORS adds CORS headers for frontend development.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type evalRequest struct {
	Expr string `json:"expr"`
}

type evalResponse struct {
	// Value is absent when the expression does not reduce to a finite
	// number; NaN and the infinities have no JSON form.
	Value *float64 `json:"value,omitempty"`
	OK    bool     `json:"ok"`
}

func (s *Server) evalExpression(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	v := drill.Evaluate(drill.Tokenize(req.Expr))
	resp := evalResponse{}
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		resp.Value = &v
		resp.OK = true
	}
	writeJSON(w, http.StatusOK, resp)
}

type checkRequest struct {
	Equation string `json:"equation"`
}

func (s *Server) checkEquation(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"holds": drill.CheckEquation(req.Equation)})
}

type gradeRequest struct {
	Fields []drill.Field `json:"fields"`
}

func (s *Server) gradeFields(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeJSON(w, http.StatusOK, drill.Grade(req.Fields))
}

func (s *Server) listSheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := s.store.ListSheets()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sheets == nil {
		sheets = []store.Sheet{}
	}
	writeJSON(w, http.StatusOK, sheets)
}

type createSheetRequest struct {
	Name   string        `json:"name"`
	Fields []drill.Field `json:"fields"`
}

func (s *Server) createSheet(w http.ResponseWriter, r *http.Request) {
	var req createSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	sheet, err := s.store.CreateSheet(req.Name, req.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sheet)
}

func (s *Server) getSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.store.GetSheet(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no such sheet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) deleteSheet(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSheet(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type gradeSheetRequest struct {
	// Answers maps field IDs to entered text. Only unknown fields accept an
	// answer; entries for given fields are ignored.
	Answers map[string]string `json:"answers"`
}

func (s *Server) gradeSheet(w http.ResponseWriter, r *http.Request) {
	var req gradeSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sheet, err := s.store.GetSheet(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no such sheet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	fields := sheet.Fields
	for i := range fields {
		if !fields[i].Unknown {
			continue
		}
		if text, ok := req.Answers[fields[i].ID]; ok {
			fields[i].Text = text
		}
	}
	writeJSON(w, http.StatusOK, drill.Grade(fields))
}
