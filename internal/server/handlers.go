package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
)

const maxBodyBytes = 1 << 20

// Redirect targets for callers without a usable assessment.
const (
	redirectAssessment = "/v1/assessment/sections"
	redirectReport     = "/v1/report"
)

// StatusBody is served at /v1/status.
type StatusBody struct {
	AssessmentCompleted bool `json:"assessment_completed"`
	DerivedFlowEntered  bool `json:"derived_flow_entered"`
}

// SectionCheck is the answer to a section gate check.
type SectionCheck struct {
	Section int      `json:"section"`
	OK      bool     `json:"ok"`
	Fields  []string `json:"fields,omitempty"`
}

// IULBanking is served once the client has entered the IUL flow.
type IULBanking struct {
	ClientName   string            `json:"client_name"`
	Suitability  model.Suitability `json:"suitability"`
	Illustration calc.IULResult    `json:"illustration"`
}

func (s *Service) handleSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, assessment.Sections)
}

func decodeProfile(r *http.Request) (model.Profile, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return model.Profile{}, err
	}
	p := model.NewProfile()
	if err := json.Unmarshal(body, &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (s *Service) handleSectionCheck(w http.ResponseWriter, r *http.Request, _ *store.Session) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 || n > model.SectionCount {
		writeError(w, http.StatusNotFound, "unknown section")
		return
	}
	p, err := decodeProfile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed profile: "+err.Error())
		return
	}

	res := SectionCheck{Section: n, OK: true}
	var ge *model.GateError
	if err := model.CheckSection(n, p); errors.As(err, &ge) {
		res.OK = false
		res.Fields = ge.Fields
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleSubmit(w http.ResponseWriter, r *http.Request, st *store.Session) {
	p, err := decodeProfile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed profile: "+err.Error())
		return
	}

	wiz := assessment.New(assessment.WithClock(s.cfg.Now))
	err = wiz.Replay(r.Context(), p, st)

	var ge *model.GateError
	switch {
	case err == nil:
		s.publishEvent(EventSubmitted, st.ID())
		writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted", "redirect": redirectReport})
	case errors.As(err, &ge):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:   "section incomplete",
			Section: ge.Section,
			Fields:  ge.Fields,
		})
	case errors.Is(err, model.ErrInvalidProfile):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Error("committing assessment", "session", shortID(st.ID()), "error", err)
		writeError(w, http.StatusInternalServerError, "could not save assessment")
	}
}

func (s *Service) handleClear(w http.ResponseWriter, r *http.Request, st *store.Session) {
	if err := st.Clear(r.Context()); err != nil {
		s.log.Error("clearing assessment", "session", shortID(st.ID()), "error", err)
		writeError(w, http.StatusInternalServerError, "could not clear assessment")
		return
	}
	s.publishEvent(EventCleared, st.ID())
	w.WriteHeader(http.StatusNoContent)
}

// loadProfile loads the session's profile or answers the absent redirect.
func (s *Service) loadProfile(w http.ResponseWriter, r *http.Request, st *store.Session) (model.Profile, bool) {
	p, err := st.Load(r.Context())
	if errors.Is(err, store.ErrAbsent) {
		if wantsHTML(r) {
			http.Redirect(w, r, redirectAssessment, http.StatusSeeOther)
			return model.Profile{}, false
		}
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no assessment", Redirect: redirectAssessment})
		return model.Profile{}, false
	}
	if err != nil {
		s.log.Error("loading assessment", "session", shortID(st.ID()), "error", err)
		writeError(w, http.StatusInternalServerError, "could not load assessment")
		return model.Profile{}, false
	}
	return p, true
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request, st *store.Session) {
	p, ok := s.loadProfile(w, r, st)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Derive(p, s.cfg.Now()))
}

func (s *Service) handleTotals(w http.ResponseWriter, r *http.Request, st *store.Session) {
	p, ok := s.loadProfile(w, r, st)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Totals(p))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request, st *store.Session) {
	completed, err := st.AssessmentCompleted(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	entered, err := st.DerivedFlowEntered(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StatusBody{AssessmentCompleted: completed, DerivedFlowEntered: entered})
}

func (s *Service) handleEnterIUL(w http.ResponseWriter, r *http.Request, st *store.Session) {
	p, ok := s.loadProfile(w, r, st)
	if !ok {
		return
	}
	rep := pipeline.Derive(p, s.cfg.Now())
	if !rep.Suitability.Recommend {
		writeJSON(w, http.StatusConflict, errorBody{Error: "IUL is not recommended for this profile", Redirect: redirectReport})
		return
	}
	if err := st.MarkDerivedFlowEntered(r.Context(), true); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.publishEvent(EventFlowEntered, st.ID())
	writeJSON(w, http.StatusOK, StatusBody{AssessmentCompleted: true, DerivedFlowEntered: true})
}

func (s *Service) handleIULBanking(w http.ResponseWriter, r *http.Request, st *store.Session) {
	entered, err := st.DerivedFlowEntered(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !entered {
		writeJSON(w, http.StatusForbidden, errorBody{Error: "complete the assessment first", Redirect: redirectReport})
		return
	}
	p, ok := s.loadProfile(w, r, st)
	if !ok {
		return
	}
	rep := pipeline.Derive(p, s.cfg.Now())
	writeJSON(w, http.StatusOK, IULBanking{
		ClientName:   rep.ClientName,
		Suitability:  rep.Suitability,
		Illustration: calc.IULComparison(calc.IllustrationInput(rep.Suitability.Age, rep.Suitability.YearsToRetirement, p.AnnualIncome)),
	})
}
