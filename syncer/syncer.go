// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncer

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/danielhkuo/allotdesk/metrics"
	"github.com/danielhkuo/allotdesk/models"
	"github.com/danielhkuo/allotdesk/rounds"
	"github.com/danielhkuo/allotdesk/sheets"
)

// Store is the part of the row store used by sync and writeback.
type Store interface {
	UpsertRegistrations(ctx context.Context, recs []models.Registration) (int, error)
	WritebackRows(ctx context.Context) ([]models.WritebackRow, error)
}

// Service runs registration sync and allotment writeback. It holds no
// mutable state; concurrent invocations are independent.
type Service struct {
	source         sheets.Source
	store          Store
	rounds         *rounds.Registry
	getenv         func(string) string
	writebackRound string
	metrics        *metrics.Metrics
}

type Option func(*Service)

// WithRounds replaces the built-in round table.
func WithRounds(r *rounds.Registry) Option {
	return func(s *Service) { s.rounds = r }
}

// WithEnv sets the lookup used for sheet locations.
func WithEnv(getenv func(string) string) Option {
	return func(s *Service) { s.getenv = getenv }
}

// WithWritebackRound selects the round whose sheet receives writeback.
func WithWritebackRound(round string) Option {
	return func(s *Service) { s.writebackRound = round }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(source sheets.Source, store Store, opts ...Option) *Service {
	s := &Service{
		source:         source,
		store:          store,
		rounds:         rounds.Default(),
		getenv:         os.Getenv,
		writebackRound: models.RoundPriority,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rounds lists the rounds this service can sync.
func (s *Service) Rounds() []string {
	return s.rounds.Rounds()
}

// defaultRound is used when the trigger omits the round.
func defaultRound(round string) string {
	if strings.TrimSpace(round) == "" {
		return models.RoundPriority
	}
	return round
}

// upstream classifies err as an upstream failure unless a collaborator
// already classified it.
func upstream(msg string, err error) error {
	var e *models.Error
	if errors.As(err, &e) {
		return err
	}
	return models.UpstreamError(msg, err)
}
