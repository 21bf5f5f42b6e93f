// Package store persists committed assessment profiles per session.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/logger"
	"github.com/guardianshield/shieldplan/internal/model"
)

// ErrAbsent is returned by Load when no usable profile is stored, either
// because none was committed or because the stored payload is malformed.
var ErrAbsent = errors.New("no assessment stored")

// ErrNoRow is returned by a Backend when a session has no stored profile.
var ErrNoRow = errors.New("no row")

// FlagDerivedFlowEntered marks that the client followed the IUL recommendation.
const FlagDerivedFlowEntered = "derived_flow_entered"

// ProfileStore is the session-scoped persistence port.
type ProfileStore interface {
	// Commit replaces the session's snapshot.
	Commit(ctx context.Context, p model.Profile) error
	// Load returns the latest snapshot or ErrAbsent.
	Load(ctx context.Context) (model.Profile, error)
	MarkDerivedFlowEntered(ctx context.Context, entered bool) error
	DerivedFlowEntered(ctx context.Context) (bool, error)
	// AssessmentCompleted reports whether a valid snapshot is present.
	AssessmentCompleted(ctx context.Context) (bool, error)
	// Clear removes the snapshot and all flags.
	Clear(ctx context.Context) error
}

// Backend is the raw key/value layer a database driver provides. Payloads
// are opaque to the backend.
type Backend interface {
	ReadProfile(ctx context.Context, sessionID string) ([]byte, error)
	WriteProfile(ctx context.Context, sessionID string, payload []byte, committedAt time.Time) error
	ReadFlag(ctx context.Context, sessionID, name string) (bool, error)
	WriteFlag(ctx context.Context, sessionID, name string, value bool) error
	ClearSession(ctx context.Context, sessionID string) error
	Close() error
}

// Session binds a Backend to one session id and implements ProfileStore.
type Session struct {
	id      string
	backend Backend
	log     *logger.Logger
	now     func() time.Time
}

var _ ProfileStore = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for malformed-payload warnings.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock overrides the commit timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession scopes b to sessionID.
func NewSession(b Backend, sessionID string, opts ...Option) *Session {
	s := &Session{
		id:      strings.TrimSpace(sessionID),
		backend: b,
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

func (s *Session) Commit(ctx context.Context, p model.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.backend.WriteProfile(ctx, s.id, payload, s.now().UTC()); err != nil {
		return fmt.Errorf("committing profile: %w", err)
	}
	// A new assessment has to earn the IUL flow again.
	if err := s.backend.WriteFlag(ctx, s.id, FlagDerivedFlowEntered, false); err != nil {
		return fmt.Errorf("resetting flow flag: %w", err)
	}
	s.log.Debug("profile committed", "session", s.id, "bytes", len(payload))
	return nil
}

func (s *Session) Load(ctx context.Context) (model.Profile, error) {
	payload, err := s.backend.ReadProfile(ctx, s.id)
	if errors.Is(err, ErrNoRow) {
		return model.Profile{}, ErrAbsent
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("loading profile: %w", err)
	}

	p, err := DecodeProfile(payload)
	if err != nil {
		s.log.Warn("discarding malformed stored profile", "session", s.id, "error", err)
		return model.Profile{}, ErrAbsent
	}
	return p, nil
}

// DecodeProfile parses and validates a stored payload.
func DecodeProfile(payload []byte) (model.Profile, error) {
	var p model.Profile
	if err := json.Unmarshal(payload, &p); err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return model.Profile{}, err
	}
	if p.Assets == nil {
		p.Assets = []model.Asset{}
	}
	if p.Liabilities == nil {
		p.Liabilities = []model.Liability{}
	}
	return p, nil
}

func (s *Session) MarkDerivedFlowEntered(ctx context.Context, entered bool) error {
	if err := s.backend.WriteFlag(ctx, s.id, FlagDerivedFlowEntered, entered); err != nil {
		return fmt.Errorf("writing flag: %w", err)
	}
	return nil
}

func (s *Session) DerivedFlowEntered(ctx context.Context) (bool, error) {
	v, err := s.backend.ReadFlag(ctx, s.id, FlagDerivedFlowEntered)
	if err != nil {
		return false, fmt.Errorf("reading flag: %w", err)
	}
	return v, nil
}

func (s *Session) AssessmentCompleted(ctx context.Context) (bool, error) {
	_, err := s.Load(ctx)
	if errors.Is(err, ErrAbsent) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.backend.ClearSession(ctx, s.id); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
