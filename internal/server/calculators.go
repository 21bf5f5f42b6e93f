package server

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/calc"
)

// calculator decodes query parameters over its defaults and runs.
type calculator func(params []byte) (any, error)

func runWith[I any, O any](defaults func() I, fn func(I) O) calculator {
	return func(params []byte) (any, error) {
		in := defaults()
		if err := json.Unmarshal(params, &in); err != nil {
			return nil, err
		}
		return fn(in), nil
	}
}

var calculators = map[string]calculator{
	"dime":      runWith(calc.DefaultDIMEInput, calc.DIME),
	"taxfree":   runWith(calc.DefaultTaxFreeInput, calc.TaxFreeEstimate),
	"annuity":   runWith(calc.DefaultAnnuityInput, calc.Annuity),
	"longevity": runWith(calc.DefaultLongevityInput, calc.Longevity),
	"inflation": runWith(calc.DefaultInflationInput, calc.InflationStress),
	"iul":       runWith(calc.DefaultIULInput, calc.IULComparison),
}

func (s *Service) handleCalculatorList(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(calculators))
	for name := range calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, names)
}

func (s *Service) handleCalculator(w http.ResponseWriter, r *http.Request) {
	run, ok := calculators[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown calculator")
		return
	}
	params, err := queryJSON(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := run(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// queryJSON turns numeric query parameters into a JSON object keyed by the
// input field names.
func queryJSON(q url.Values) ([]byte, error) {
	obj := make(map[string]float64, len(q))
	for key, vals := range q {
		if len(vals) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(vals[len(vals)-1], 64)
		if err != nil {
			return nil, &paramError{key: key, value: vals[len(vals)-1]}
		}
		obj[key] = v
	}
	return json.Marshal(obj)
}

type paramError struct{ key, value string }

func (e *paramError) Error() string {
	return "parameter " + e.key + " is not a number: " + strconv.Quote(e.value)
}
