// Package menustore keeps menu documents in a key-value store and lets only
// the holder of a document's edit token replace its data.
package menustore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/menushare/internal/kv"
	"github.com/dgallion1/menushare/internal/metric"
)

// Created is returned once, at creation. The token is never handed out again.
type Created struct {
	ID        string `json:"id"`
	EditToken string `json:"editToken"`
}

// Service implements Create, Read and Update over a kv.Store. It holds no
// mutable state of its own; concurrent Updates to one document race in the
// store and the later Put wins.
type Service struct {
	store    kv.Store
	log      *slog.Logger
	ops      metric.IncrementalCounter
	newID    func() string
	newToken func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithCounter records every operation outcome as (op, result).
func WithCounter(c metric.IncrementalCounter) Option {
	return func(s *Service) { s.ops = c }
}

// WithIDSource overrides id and token generation.
func WithIDSource(newID func() string, newToken func() (string, error)) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
		if newToken != nil {
			s.newToken = newToken
		}
	}
}

func NewService(store kv.Store, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      log,
		ops:      metric.Nop{},
		newID:    NewID,
		newToken: NewToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores payload under a fresh id and token.
func (s *Service) Create(ctx context.Context, payload []byte) (Created, error) {
	data, err := objectPayload(payload)
	if err != nil {
		s.observe("create", err)
		return Created{}, err
	}

	token, err := s.newToken()
	if err != nil {
		s.observe("create", err)
		return Created{}, fmt.Errorf("generate token: %w", err)
	}
	id := s.newID()

	raw, err := encodeRecord(record{EditToken: token, Data: data})
	if err != nil {
		s.observe("create", err)
		return Created{}, err
	}
	if err := s.store.Put(ctx, key(id), raw); err != nil {
		s.observe("create", err)
		return Created{}, fmt.Errorf("store menu %s: %w", id, err)
	}

	s.observe("create", nil)
	s.log.Debug("menu created", "id", id, "bytes", len(data))
	return Created{ID: id, EditToken: token}, nil
}

// Read returns the data of a document. Missing data reads as {}.
func (s *Service) Read(ctx context.Context, id string) (json.RawMessage, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		s.observe("read", err)
		return nil, err
	}
	s.observe("read", nil)
	if len(rec.Data) == 0 || string(rec.Data) == "null" {
		return emptyObject, nil
	}
	return rec.Data, nil
}

// Update replaces a document's data wholesale, keeping its original token.
func (s *Service) Update(ctx context.Context, id, token string, payload []byte) error {
	rec, err := s.load(ctx, id)
	if err != nil {
		s.observe("update", err)
		return err
	}
	if !tokenMatches(token, rec.EditToken) {
		s.observe("update", ErrUnauthorized)
		s.log.Debug("menu update rejected", "id", id)
		return ErrUnauthorized
	}
	data, err := objectPayload(payload)
	if err != nil {
		s.observe("update", err)
		return err
	}

	raw, err := encodeRecord(record{EditToken: rec.EditToken, Data: data})
	if err != nil {
		s.observe("update", err)
		return err
	}
	if err := s.store.Put(ctx, key(id), raw); err != nil {
		s.observe("update", err)
		return fmt.Errorf("store menu %s: %w", id, err)
	}

	s.observe("update", nil)
	s.log.Debug("menu updated", "id", id, "bytes", len(data))
	return nil
}

// load fetches and decodes a record. Absence and corruption both surface
// as ErrNotFound.
func (s *Service) load(ctx context.Context, id string) (record, error) {
	if id == "" {
		return record{}, ErrNotFound
	}
	raw, err := s.store.Get(ctx, key(id))
	if errors.Is(err, kv.ErrNotFound) {
		return record{}, ErrNotFound
	}
	if err != nil {
		return record{}, fmt.Errorf("load menu %s: %w", id, err)
	}
	rec, ok := decodeRecord(raw)
	if !ok {
		s.log.Warn("corrupt menu record", "id", id)
		return record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) observe(op string, err error) {
	s.ops.Increment(op, resultOf(err))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
