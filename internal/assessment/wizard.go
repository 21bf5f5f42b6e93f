package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
)

var (
	// ErrGateFailed is returned by Next when the current section is incomplete.
	// The wrapped *GateError names the failing fields.
	ErrGateFailed = errors.New("section gate failed")
	// ErrSubmitted is returned by any mutation after the profile was committed.
	ErrSubmitted = errors.New("assessment already submitted")
	// ErrUnknownID is returned when an asset or liability id is not present.
	ErrUnknownID = errors.New("unknown id")
)

// GateError lists the fields that keep a section from advancing.
type GateError = model.GateError

// Transition is the outcome of a successful Next.
type Transition int

const (
	TransitionAdvanced Transition = iota + 1
	TransitionSubmitted
)

func (t Transition) String() string {
	switch t {
	case TransitionAdvanced:
		return "advanced"
	case TransitionSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// Wizard is the section state machine around an in-progress profile.
// It is not safe for concurrent use.
type Wizard struct {
	section   Section
	submitted bool
	profile   model.Profile

	now   func() time.Time
	newID func() string
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithClock sets the clock used for the retirement-age check at commit.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithIDGenerator overrides how asset and liability ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(w *Wizard) { w.newID = newID }
}

// New starts a wizard at section 1 with an empty default profile.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		section: SectionProfile,
		profile: model.NewProfile(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Section() Section { return w.section }
func (w *Wizard) Submitted() bool  { return w.submitted }

// Profile returns a copy of the in-progress profile.
func (w *Wizard) Profile() model.Profile { return w.profile.Clone() }

// Check evaluates the current section's gate.
func (w *Wizard) Check() error {
	return model.CheckSection(int(w.section), w.profile)
}

// CanAdvance reports whether Next would move past the current section.
func (w *Wizard) CanAdvance() bool {
	return !w.submitted && w.Check() == nil
}

// Next advances one section when the gate passes. From the last section it
// commits the profile to st and enters the submitted state.
func (w *Wizard) Next(ctx context.Context, st store.ProfileStore) (Transition, error) {
	if w.submitted {
		return 0, ErrSubmitted
	}
	if err := w.Check(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrGateFailed, err)
	}

	if int(w.section) < model.SectionCount {
		w.section++
		return TransitionAdvanced, nil
	}

	snapshot := w.profile.Clone()
	if err := snapshot.ValidateAt(w.now()); err != nil {
		return 0, err
	}
	if err := st.Commit(ctx, snapshot); err != nil {
		return 0, err
	}
	w.submitted = true
	return TransitionSubmitted, nil
}

// Previous moves back one section without checking anything. It returns false
// at section 1 or after submission.
func (w *Wizard) Previous() bool {
	if w.submitted || w.section <= SectionProfile {
		return false
	}
	w.section--
	return true
}

// Update applies fn to the in-progress profile. If fn leaves a collection row
// with an unknown type tag or a negative or non-finite amount the edit is
// rolled back.
func (w *Wizard) Update(fn func(*model.Profile)) error {
	if w.submitted {
		return ErrSubmitted
	}
	prev := w.profile.Clone()
	fn(&w.profile)
	if w.profile.Assets == nil {
		w.profile.Assets = []model.Asset{}
	}
	if w.profile.Liabilities == nil {
		w.profile.Liabilities = []model.Liability{}
	}
	if err := validateRows(w.profile); err != nil {
		w.profile = prev
		return err
	}
	return nil
}

func validateRows(p model.Profile) error {
	for _, a := range p.Assets {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, l := range p.Liabilities {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Totals recomputes the running totals from the current collections.
func (w *Wizard) Totals() model.RunningTotals {
	return pipeline.Totals(w.profile)
}
