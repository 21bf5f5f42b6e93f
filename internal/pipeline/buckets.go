package pipeline

import (
	"fmt"

	"github.com/guardianshield/shieldplan/internal/model"
)

// ComputeBuckets splits assets by tax treatment. Percentages are zero when
// there are no assets.
func ComputeBuckets(assets []model.Asset) model.TaxBuckets {
	var b model.TaxBuckets
	for _, a := range assets {
		switch a.TaxTreatment {
		case model.TaxFree:
			b.TaxFree += a.Value
		case model.TaxDeferred:
			b.TaxDeferred += a.Value
		case model.Taxable:
			b.Taxable += a.Value
		default:
			panic(fmt.Sprintf("pipeline: unhandled tax treatment %q", a.TaxTreatment))
		}
		b.TotalAssets += a.Value
	}

	if b.TotalAssets > 0 {
		b.TaxFreePercent = b.TaxFree / b.TotalAssets * 100
		b.TaxDeferredPercent = b.TaxDeferred / b.TotalAssets * 100
		b.TaxablePercent = b.Taxable / b.TotalAssets * 100
	}
	return b
}
