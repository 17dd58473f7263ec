package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/menushare/internal/menustore"
	"github.com/dgallion1/menushare/internal/page"
)

const assetsPrefix = "/assets/"

func (s *Server) handleMenuPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := s.menus.Read(r.Context(), id)
	if errors.Is(err, menustore.ErrNotFound) {
		var buf bytes.Buffer
		page.NotFound(&buf)
		writeHTML(w, http.StatusNotFound, buf.Bytes())
		return
	}
	if err != nil {
		s.storeError(w, r, err, nil)
		return
	}

	opts := page.Options{}
	if s.cfg.ViewerAssetsDir != "" {
		opts.AssetsPrefix = assetsPrefix
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, data, opts); err != nil {
		s.log.Error("render menu page", "id", id, "error", err)
		jsonError(w, "render error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(body)
}
