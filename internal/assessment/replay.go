package assessment

import (
	"context"

	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/store"
)

// Seed replaces the in-progress profile with p and returns to section 1.
// Rows without an id get one.
func (w *Wizard) Seed(p model.Profile) error {
	if w.submitted {
		return ErrSubmitted
	}
	if err := w.Update(func(dst *model.Profile) {
		*dst = p.Clone()
		for i := range dst.Assets {
			if dst.Assets[i].ID == "" {
				dst.Assets[i].ID = w.uniqueID(func(id string) bool { return dst.AssetByID(id) >= 0 })
			}
		}
		for i := range dst.Liabilities {
			if dst.Liabilities[i].ID == "" {
				dst.Liabilities[i].ID = w.uniqueID(func(id string) bool { return dst.LiabilityByID(id) >= 0 })
			}
		}
	}); err != nil {
		return err
	}
	w.section = SectionProfile
	return nil
}

// FastForward advances through every passing gate but stops on the last
// section without committing. It returns the section it stopped on.
func (w *Wizard) FastForward() Section {
	for !w.submitted && int(w.section) < model.SectionCount && w.CanAdvance() {
		w.section++
	}
	return w.section
}

// Replay seeds a fresh wizard with p and walks it through every section,
// committing on the last one. The first failing gate stops the replay with
// the wizard left on that section.
func (w *Wizard) Replay(ctx context.Context, p model.Profile, st store.ProfileStore) error {
	if err := w.Seed(p); err != nil {
		return err
	}
	for {
		tr, err := w.Next(ctx, st)
		if err != nil {
			return err
		}
		if tr == TransitionSubmitted {
			return nil
		}
	}
}
