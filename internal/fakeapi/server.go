// Package fakeapi is an in-memory implementation of the notes HTTP API used
// by tests and local development.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/aretw0/notekeep/pkg/core"
)

// Server holds per-token note collections and the guest seed set.
type Server struct {
	mu       sync.Mutex
	users    map[string][]core.Note
	guest    []core.Note
	nextID   int
	failNext int
	requests []string
	now      func() time.Time
}

// New returns an empty server.
func New() *Server {
	return &Server{users: make(map[string][]core.Note), now: time.Now}
}

// SetClock replaces the time source used for lastEdited.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser registers token with an initial collection.
func (s *Server) AddUser(token string, notes ...core.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = slices.Clone(notes)
}

// SetGuestNotes replaces the documents served from /guestNotes.
func (s *Server) SetGuestNotes(notes ...core.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guest = slices.Clone(notes)
}

// Notes returns the collection stored for token.
func (s *Server) Notes(token string) []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users[token])
}

// FailNext makes the next request answer with status.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
}

// Requests returns "METHOD path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Handler returns the API router, mounted under /api.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.record)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/guestNotes", s.handleGuestNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes", s.authed(s.handleList)).Methods(http.MethodGet)
	api.HandleFunc("/notes", s.authed(s.handleCreate)).Methods(http.MethodPost)
	api.HandleFunc("/notes", s.authed(s.handleUpdate)).Methods(http.MethodPut)
	api.HandleFunc("/notes", s.authed(s.handleDelete)).Methods(http.MethodDelete)
	return router
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		status := s.failNext
		s.failNext = 0
		s.mu.Unlock()

		if status != 0 {
			respondError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, token string)

func (s *Server) authed(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Fields(r.Header.Get("Authorization"))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		s.mu.Lock()
		_, ok := s.users[parts[1]]
		s.mu.Unlock()
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		h(w, r, parts[1])
	}
}

func (s *Server) handleGuestNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	notes := slices.Clone(s.guest)
	s.mu.Unlock()
	if notes == nil {
		notes = []core.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, token string) {
	s.mu.Lock()
	notes := slices.Clone(s.users[token])
	s.mu.Unlock()
	if notes == nil {
		notes = []core.Note{}
	}
	respondJSON(w, http.StatusOK, notes)
}

type notePayload struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsArchived *bool    `json:"isArchived"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, token string) {
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	s.nextID++
	n := core.Note{
		StorageID:  fmt.Sprintf("srv-%d", s.nextID),
		Title:      p.Title,
		Content:    p.Content,
		Tags:       p.Tags,
		LastEdited: s.now(),
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	s.users[token] = append(s.users[token], n)
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, token string) {
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	notes := s.users[token]
	i := slices.IndexFunc(notes, func(n core.Note) bool { return n.HasKey(p.ID) })
	if i < 0 {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}
	n := notes[i]
	n.Title = p.Title
	n.Content = p.Content
	n.Tags = p.Tags
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	n.LastEdited = s.now()
	notes[i] = n
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, n)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, token string) {
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	notes := s.users[token]
	i := slices.IndexFunc(notes, func(n core.Note) bool { return n.HasKey(p.ID) })
	if i < 0 {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}
	s.users[token] = slices.Delete(notes, i, i+1)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"message": "Deleted", "id": p.ID})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
