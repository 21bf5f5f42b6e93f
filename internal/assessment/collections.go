package assessment

import (
	"fmt"

	"github.com/guardianshield/shieldplan/internal/model"
)

// AddAsset appends a blank checking account and returns its new id.
func (w *Wizard) AddAsset() (string, error) {
	if w.submitted {
		return "", ErrSubmitted
	}
	id := w.uniqueID(func(id string) bool { return w.profile.AssetByID(id) >= 0 })
	w.profile.Assets = append(w.profile.Assets, model.Asset{
		ID:           id,
		Type:         model.AssetChecking,
		TaxTreatment: model.AssetChecking.DefaultTaxTreatment(),
	})
	return id, nil
}

// UpdateAsset applies fn to the asset with the given id. The id itself cannot
// be changed, and edits that leave the row invalid are discarded.
func (w *Wizard) UpdateAsset(id string, fn func(*model.Asset)) error {
	if w.submitted {
		return ErrSubmitted
	}
	i := w.profile.AssetByID(id)
	if i < 0 {
		return fmt.Errorf("asset %q: %w", id, ErrUnknownID)
	}
	a := w.profile.Assets[i]
	fn(&a)
	a.ID = id
	if err := a.Validate(); err != nil {
		return err
	}
	w.profile.Assets[i] = a
	return nil
}

// RemoveAsset deletes the asset with the given id. It reports whether a row
// was removed.
func (w *Wizard) RemoveAsset(id string) bool {
	if w.submitted {
		return false
	}
	i := w.profile.AssetByID(id)
	if i < 0 {
		return false
	}
	w.profile.Assets = append(w.profile.Assets[:i:i], w.profile.Assets[i+1:]...)
	return true
}

// AddLiability appends a blank credit card balance and returns its new id.
func (w *Wizard) AddLiability() (string, error) {
	if w.submitted {
		return "", ErrSubmitted
	}
	id := w.uniqueID(func(id string) bool { return w.profile.LiabilityByID(id) >= 0 })
	w.profile.Liabilities = append(w.profile.Liabilities, model.Liability{
		ID:   id,
		Type: model.LiabilityCreditCard,
	})
	return id, nil
}

// UpdateLiability applies fn to the liability with the given id.
func (w *Wizard) UpdateLiability(id string, fn func(*model.Liability)) error {
	if w.submitted {
		return ErrSubmitted
	}
	i := w.profile.LiabilityByID(id)
	if i < 0 {
		return fmt.Errorf("liability %q: %w", id, ErrUnknownID)
	}
	l := w.profile.Liabilities[i]
	fn(&l)
	l.ID = id
	if err := l.Validate(); err != nil {
		return err
	}
	w.profile.Liabilities[i] = l
	return nil
}

// RemoveLiability deletes the liability with the given id.
func (w *Wizard) RemoveLiability(id string) bool {
	if w.submitted {
		return false
	}
	i := w.profile.LiabilityByID(id)
	if i < 0 {
		return false
	}
	w.profile.Liabilities = append(w.profile.Liabilities[:i:i], w.profile.Liabilities[i+1:]...)
	return true
}

func (w *Wizard) uniqueID(taken func(string) bool) string {
	for {
		if id := w.newID(); id != "" && !taken(id) {
			return id
		}
	}
}
