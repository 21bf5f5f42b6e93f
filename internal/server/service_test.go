package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/session"
	"github.com/guardianshield/shieldplan/internal/store"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	svc    *Service
	srv    *httptest.Server
	client *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mgr, err := session.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	svc := New(Config{
		Backend:      store.NewMemory(),
		Sessions:     mgr,
		Now:          func() time.Time { return fixedNow },
		EventsBuffer: 2,
	})
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)

	return &harness{t: t, svc: svc, srv: srv, client: newClient(t)}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (h *harness) do(c *http.Client, method, path string, body any, out any) *http.Response {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, h.srv.URL+path, rd)
	require.NoError(h.t, err)
	resp, err := c.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func strongCandidate() model.Profile {
	p := model.NewProfile()
	p.FirstName, p.LastName, p.Email = "Jordan", "Reyes", "jordan@example.com"
	p.DateOfBirth, p.State = "1985-11-30", "TX"
	p.AnnualIncome = 150000
	p.Dependents = 2
	p.Assets = []model.Asset{{ID: "a1", Type: model.Asset401k, Value: 200000, TaxTreatment: model.TaxDeferred}}
	return p
}

func TestReportAbsentRedirects(t *testing.T) {
	h := newHarness(t)

	var body errorBody
	resp := h.do(h.client, http.MethodGet, "/v1/report", nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "/v1/assessment/sections", body.Redirect)

	req, _ := http.NewRequest(http.MethodGet, h.srv.URL+"/v1/report", nil)
	req.Header.Set("Accept", "text/html")
	hresp, err := h.client.Do(req)
	require.NoError(t, err)
	hresp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, hresp.StatusCode)
	assert.Equal(t, "/v1/assessment/sections", hresp.Header.Get("Location"))
}

func TestSubmitGateFailure(t *testing.T) {
	h := newHarness(t)
	p := strongCandidate()
	p.AnnualIncome = 0

	var body errorBody
	resp := h.do(h.client, http.MethodPost, "/v1/assessment", p, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, 2, body.Section)
	assert.Equal(t, []string{"AnnualIncome"}, body.Fields)

	var st StatusBody
	h.do(h.client, http.MethodGet, "/v1/status", nil, &st)
	assert.False(t, st.AssessmentCompleted)
}

func TestSubmitReportAndIULFlow(t *testing.T) {
	h := newHarness(t)

	resp := h.do(h.client, http.MethodPost, "/v1/assessment", strongCandidate(), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rep model.Report
	resp = h.do(h.client, http.MethodGet, "/v1/report", nil, &rep)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jordan Reyes", rep.ClientName)
	assert.Equal(t, 40, rep.Suitability.Age)
	assert.True(t, rep.Suitability.Recommend)
	assert.Equal(t, 1_720_000.0, rep.Coverage.Gap)

	var banking errorBody
	resp = h.do(h.client, http.MethodGet, "/v1/iul-banking", nil, &banking)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var st StatusBody
	resp = h.do(h.client, http.MethodPost, "/v1/iul", nil, &st)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, st.DerivedFlowEntered)

	var info IULBanking
	resp = h.do(h.client, http.MethodGet, "/v1/iul-banking", nil, &info)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 40, info.Illustration.Input.Age)
	assert.Equal(t, 65, info.Illustration.RetirementAge)
	assert.InDelta(t, 1250, info.Illustration.Input.MonthlyContribution, 1e-9)
}

func TestIULNotRecommendedConflicts(t *testing.T) {
	h := newHarness(t)
	p := strongCandidate()
	p.DateOfBirth = "1967-02-14"
	p.AnnualIncome = 60000
	p.HealthStatus = model.HealthFair
	require.Equal(t, http.StatusCreated, h.do(h.client, http.MethodPost, "/v1/assessment", p, nil).StatusCode)

	resp := h.do(h.client, http.MethodPost, "/v1/iul", nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(h.client, http.MethodPost, "/v1/assessment", strongCandidate(), nil).StatusCode)

	other := newClient(t)
	resp := h.do(other, http.MethodGet, "/v1/report", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(h.client, http.MethodGet, "/v1/report", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClearStartsOver(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(h.client, http.MethodPost, "/v1/assessment", strongCandidate(), nil).StatusCode)

	resp := h.do(h.client, http.MethodDelete, "/v1/assessment", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var st StatusBody
	h.do(h.client, http.MethodGet, "/v1/status", nil, &st)
	assert.False(t, st.AssessmentCompleted)
	assert.False(t, st.DerivedFlowEntered)

	var events []Event
	h.do(h.client, http.MethodGet, "/v1/events", nil, &events)
	require.Len(t, events, 2)
	assert.Equal(t, EventSubmitted, events[0].Type)
	assert.Equal(t, EventCleared, events[1].Type)
}

func TestSectionCheck(t *testing.T) {
	h := newHarness(t)

	var res SectionCheck
	h.do(h.client, http.MethodPost, "/v1/assessment/sections/1/check", map[string]string{"firstName": "Ann"}, &res)
	assert.False(t, res.OK)
	assert.ElementsMatch(t, []string{"LastName", "Email", "DateOfBirth", "State"}, res.Fields)

	h.do(h.client, http.MethodPost, "/v1/assessment/sections/3/check", map[string]string{}, &res)
	assert.True(t, res.OK)

	resp := h.do(h.client, http.MethodPost, "/v1/assessment/sections/9/check", map[string]string{}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalculatorEndpoint(t *testing.T) {
	h := newHarness(t)

	var res calc.AnnuityResult
	resp := h.do(h.client, http.MethodGet, "/v1/calculators/annuity?purchase_amount=100000&age=99", nil, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 80, res.Input.Age)
	assert.Equal(t, 5500.0, res.AnnualIncome)

	resp = h.do(h.client, http.MethodGet, "/v1/calculators/annuity?age=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(h.client, http.MethodGet, "/v1/calculators/annuity?age=60.5", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(h.client, http.MethodGet, "/v1/calculators/lottery", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var names []string
	h.do(h.client, http.MethodGet, "/v1/calculators", nil, &names)
	assert.Equal(t, []string{"annuity", "dime", "inflation", "iul", "longevity", "taxfree"}, names)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2})

	s.publishEvent(EventSubmitted, "one")
	s.publishEvent(EventCleared, "two")
	s.publishEvent(EventSubmitted, "three")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
	if s.submissions != 2 {
		t.Fatalf("submissions = %d, want 2", s.submissions)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("shortID = %q, want 01234567", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID = %q, want abc", got)
	}
}
