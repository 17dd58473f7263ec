package menustore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// record is the persisted form of a menu document. The id lives in the key.
type record struct {
	EditToken string          `json:"editToken"`
	Data      json.RawMessage `json:"data,omitempty"`
}

var emptyObject = json.RawMessage(`{}`)

func key(id string) string {
	return "menu:" + id
}

// encodeRecord keeps the data's strings byte for byte; only insignificant
// whitespace is dropped.
func encodeRecord(r record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeRecord parses a stored record. Anything that isn't a JSON object
// with a string editToken is treated as corrupt.
func decodeRecord(raw []byte) (record, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return record{}, false
	}
	var r record
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return record{}, false
	}
	return r, true
}

// objectPayload validates that payload is a single JSON object and returns
// it compacted of surrounding whitespace.
func objectPayload(payload []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidInput)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: payload must be an object", ErrInvalidInput)
	}
	return json.RawMessage(trimmed), nil
}

// IsMalformed reports whether an ErrInvalidInput was caused by a body that
// isn't parseable JSON at all, as opposed to well-formed JSON of the wrong shape.
func IsMalformed(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || !json.Valid(trimmed)
}
