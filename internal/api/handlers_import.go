package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/menushare/internal/menuimport"
)

type importResponse struct {
	ID        string `json:"id"`
	EditToken string `json:"editToken"`
	Items     int    `json:"items"`
}

func (s *Server) handleImportMenu(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !menuimport.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	payload, err := s.importer.Import(bytes.NewReader(data), filename, menuimport.Options{
		Name:     r.FormValue("name"),
		Currency: r.FormValue("currency"),
	})
	switch {
	case errors.Is(err, menuimport.ErrNoItems):
		jsonError(w, "no menu items found", http.StatusBadRequest)
		return
	case err != nil:
		s.log.Warn("import failed", "filename", filename, "error", err)
		jsonError(w, "could not read document", http.StatusBadRequest)
		return
	}

	if r.FormValue("dry_run") == "true" {
		writeJSON(w, http.StatusOK, payload)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		jsonError(w, "encode menu", http.StatusInternalServerError)
		return
	}
	created, err := s.menus.Create(r.Context(), body)
	if err != nil {
		s.storeError(w, r, err, body)
		return
	}

	s.log.Info("menu imported", "id", created.ID, "filename", filename, "items", len(payload.Items))
	writeJSON(w, http.StatusOK, importResponse{
		ID:        created.ID,
		EditToken: created.EditToken,
		Items:     len(payload.Items),
	})
}
