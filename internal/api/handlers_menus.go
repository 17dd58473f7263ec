package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/menushare/internal/menustore"
)

func (s *Server) handleCreateMenu(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		jsonError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	created, err := s.menus.Create(r.Context(), body)
	if err != nil {
		s.storeError(w, r, err, body)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleReadMenu(w http.ResponseWriter, r *http.Request) {
	data, err := s.menus.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err, nil)
		return
	}

	etag := `"` + menustore.Fingerprint(data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleUpdateMenu(w http.ResponseWriter, r *http.Request) {
	// An unreadable body still goes through Update so a missing document or
	// a bad token is reported first.
	body, readErr := s.readBody(w, r)
	if readErr != nil {
		body = nil
	}

	err := s.menus.Update(r.Context(), chi.URLParam(r, "id"), r.Header.Get(HeaderEditToken), body)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, okResponse)
	case readErr != nil && errors.Is(err, menustore.ErrInvalidInput):
		jsonError(w, msgInvalidBody, http.StatusBadRequest)
	default:
		s.storeError(w, r, err, body)
	}
}

// storeError maps store errors to responses in one place.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, body []byte) {
	switch {
	case errors.Is(err, menustore.ErrInvalidInput):
		msg := msgInvalidBody
		if r.Method == http.MethodPost && menustore.IsMalformed(body) {
			msg = msgInvalidJSON
		}
		jsonError(w, msg, http.StatusBadRequest)
	case errors.Is(err, menustore.ErrNotFound):
		jsonError(w, msgNotFound, http.StatusNotFound)
	case errors.Is(err, menustore.ErrUnauthorized):
		jsonError(w, msgUnauthorized, http.StatusUnauthorized)
	default:
		s.log.Error("store operation failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, msgStorage, http.StatusInternalServerError)
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
}
