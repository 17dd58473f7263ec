package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
)

// Short error messages returned in {"error": ...} bodies.
const (
	msgInvalidJSON  = "Invalid JSON"
	msgInvalidBody  = "Invalid body"
	msgUnauthorized = "Unauthorized"
	msgNotFound     = "Not found"
	msgStorage      = "storage error"
)

var okResponse = map[string]bool{"ok": true}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
