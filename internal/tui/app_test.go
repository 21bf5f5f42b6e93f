package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
	"github.com/guardianshield/shieldplan/internal/tui/components"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testApp(t *testing.T) App {
	t.Helper()
	return NewApp(context.Background(), Options{
		Store:   store.NewSession(store.NewMemory(), "tui-test"),
		Now:     func() time.Time { return fixedNow },
		Session: "tui-test",
	})
}

func candidate() model.Profile {
	p := model.NewProfile()
	p.FirstName, p.LastName, p.Email = "Jordan", "Reyes", "jordan@example.com"
	p.DateOfBirth, p.State = "1985-11-30", "TX"
	p.AnnualIncome = 150000
	p.Dependents = 2
	p.Assets = []model.Asset{{ID: "a1", Type: model.Asset401k, Value: 200000, TaxTreatment: model.TaxDeferred}}
	return p
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2 // horizontal padding in tab renderer
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"$95,000", 95000, false},
		{" 1250.50 ", 1250.5, false},
		{"-5", 0, true},
		{"lots", 0, true},
		{"Inf", 0, true},
		{"-inf", 0, true},
		{"NaN", 0, true},
		{"1e400", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplySectionWritesThroughSetters(t *testing.T) {
	w := assessment.New()
	v := valuesFrom(w.Profile())
	v.FirstName, v.LastName, v.Email = " Jordan ", "Reyes", "jordan@example.com"
	v.DateOfBirth, v.State = "1985-11-30", "tx"
	v.Dependents = "2"

	if err := applySection(w, assessment.SectionProfile, v); err != nil {
		t.Fatalf("applySection: %v", err)
	}
	p := w.Profile()
	if p.FirstName != "Jordan" || p.State != "TX" || p.Dependents != 2 {
		t.Fatalf("profile = %+v", p)
	}

	v.AnnualIncome = "$150,000"
	if err := applySection(w, assessment.SectionIncome, v); err != nil {
		t.Fatalf("applySection income: %v", err)
	}
	if got := w.Profile().AnnualIncome; got != 150000 {
		t.Fatalf("AnnualIncome = %v, want 150000", got)
	}

	v.DateOfBirth = "11/30/1985"
	if err := applySection(w, assessment.SectionProfile, v); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestApplyAssetUsesTypeDefaultTreatment(t *testing.T) {
	w := assessment.New()
	if err := applyAsset(w, "", assetValues{Type: string(model.AssetRothIRA), Value: "12,000"}); err != nil {
		t.Fatalf("applyAsset: %v", err)
	}
	p := w.Profile()
	if len(p.Assets) != 1 {
		t.Fatalf("assets = %d, want 1", len(p.Assets))
	}
	if p.Assets[0].TaxTreatment != model.TaxFree {
		t.Errorf("treatment = %s, want tax-free", p.Assets[0].TaxTreatment)
	}

	// An invalid new row is not left behind.
	if err := applyAsset(w, "", assetValues{Type: "gold", Value: "1"}); err == nil {
		t.Fatal("expected an error for an unknown type")
	}
	if n := len(w.Profile().Assets); n != 1 {
		t.Fatalf("assets after failed add = %d, want 1", n)
	}
}

func TestApplyLiabilityOptionalTerm(t *testing.T) {
	w := assessment.New()
	if err := applyLiability(w, "", liabilityValues{Type: string(model.LiabilityMortgage), Balance: "300000", Rate: "6.5"}); err != nil {
		t.Fatalf("applyLiability: %v", err)
	}
	l := w.Profile().Liabilities[0]
	if l.TermMonths != nil {
		t.Errorf("TermMonths = %v, want nil", *l.TermMonths)
	}

	if err := applyLiability(w, l.ID, liabilityValues{Type: string(model.LiabilityMortgage), Balance: "300000", Term: "360"}); err != nil {
		t.Fatalf("applyLiability edit: %v", err)
	}
	l = w.Profile().Liabilities[0]
	if l.TermMonths == nil || *l.TermMonths != 360 {
		t.Fatalf("TermMonths = %v, want 360", l.TermMonths)
	}
	if w.Totals().MortgageDebt != 300000 {
		t.Errorf("MortgageDebt = %v, want 300000", w.Totals().MortgageDebt)
	}
}

func TestDescribeErr(t *testing.T) {
	err := &model.GateError{Section: 1, Fields: []string{"FirstName", "DateOfBirth"}}
	if got := describeErr(err); got != "Required: first name, date of birth" {
		t.Errorf("describeErr = %q", got)
	}
	if got := describeErr(errors.New("boom")); got != "boom" {
		t.Errorf("describeErr = %q", got)
	}
}

func TestGateFailureKeepsSection(t *testing.T) {
	a := testApp(t)
	a.advance()
	if a.wiz.Section() != assessment.SectionProfile {
		t.Fatalf("section = %v, want Profile", a.wiz.Section())
	}
	if !strings.HasPrefix(a.notice, "Required:") {
		t.Fatalf("notice = %q", a.notice)
	}
}

func TestSeedFastForwards(t *testing.T) {
	p := candidate()
	a := NewApp(context.Background(), Options{
		Store: store.NewSession(store.NewMemory(), "seeded"),
		Now:   func() time.Time { return fixedNow },
		Seed:  &p,
	})
	if a.wiz.Section() != assessment.SectionProtection {
		t.Fatalf("section = %v, want Protection", a.wiz.Section())
	}
	if a.mode != modeWizard {
		t.Fatalf("mode = %v, want wizard", a.mode)
	}
}

func TestSubmitCmdCommitsAndDerives(t *testing.T) {
	ctx := context.Background()
	st := store.NewSession(store.NewMemory(), "submit")
	wiz := assessment.New(assessment.WithClock(func() time.Time { return fixedNow }))
	if err := wiz.Seed(candidate()); err != nil {
		t.Fatal(err)
	}
	wiz.FastForward()

	msg := submitCmd(ctx, wiz, st, func() time.Time { return fixedNow })()
	sub, ok := msg.(SubmittedMsg)
	if !ok {
		t.Fatalf("msg = %T, want SubmittedMsg", msg)
	}
	if sub.Err != nil {
		t.Fatalf("submit: %v", sub.Err)
	}
	if sub.Report.Coverage.Gap != 1720000 {
		t.Errorf("Gap = %v, want 1720000", sub.Report.Coverage.Gap)
	}
	if done, _ := st.AssessmentCompleted(ctx); !done {
		t.Error("assessment not committed")
	}
}

func reportApp(t *testing.T, p model.Profile) App {
	t.Helper()
	a := testApp(t)
	a.width, a.height = 120, 40
	m, _ := a.Update(SubmittedMsg{Report: pipeline.Derive(p, fixedNow)})
	return m.(App)
}

func TestReportKeysSwitchTabs(t *testing.T) {
	a := reportApp(t, candidate())
	if a.mode != modeReport {
		t.Fatalf("mode = %v, want report", a.mode)
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	a = m.(App)
	if a.activeTab != 2 {
		t.Fatalf("activeTab = %d, want 2", a.activeTab)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a = m.(App)
	if a.activeTab != 3 {
		t.Fatalf("activeTab = %d, want 3", a.activeTab)
	}

	view := a.View()
	for _, want := range []string{"Coverage", "Jordan Reyes", "DIME Insurance Need"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterIULFlow(t *testing.T) {
	a := reportApp(t, candidate())

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	a = m.(App)
	if cmd == nil {
		t.Fatal("expected a command to mark the flow entered")
	}
	m, _ = a.Update(cmd())
	a = m.(App)
	if a.iul == nil || !a.flowEntered {
		t.Fatal("IUL view not opened")
	}
	if entered, _ := a.st.DerivedFlowEntered(context.Background()); !entered {
		t.Error("flow flag not stored")
	}
	if !strings.Contains(a.View(), "Worst Case") {
		t.Error("IUL view not rendered")
	}
}

func TestEnterIULRefusedWhenNotRecommended(t *testing.T) {
	p := candidate()
	p.DateOfBirth = "1967-02-14"
	p.AnnualIncome = 60000
	p.HealthStatus = model.HealthFair
	a := reportApp(t, p)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	a = m.(App)
	if cmd != nil {
		t.Fatal("flow should not be entered")
	}
	if a.notice == "" {
		t.Fatal("expected a notice")
	}
}

func TestMenuRemoveRow(t *testing.T) {
	a := testApp(t)
	if err := applyAsset(a.wiz, "", assetValues{Type: string(model.AssetSavings), Value: "500"}); err != nil {
		t.Fatal(err)
	}
	id := a.wiz.Profile().Assets[0].ID
	a.menuChosen(assessment.SectionAssets, actionRemove+id)
	if n := len(a.wiz.Profile().Assets); n != 0 {
		t.Fatalf("assets = %d, want 0", n)
	}
}

func TestReportLoadedAbsentOpensWizard(t *testing.T) {
	a := NewReportApp(context.Background(), Options{
		Store: store.NewSession(store.NewMemory(), "empty"),
		Now:   func() time.Time { return fixedNow },
	})
	msg := loadReportCmd(a.ctx, a.st, a.now)()
	m, _ := a.Update(msg)
	a = m.(App)
	if a.mode != modeWizard {
		t.Fatalf("mode = %v, want wizard", a.mode)
	}
	if a.notice == "" {
		t.Fatal("expected a notice")
	}
}
