package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guardianshield/shieldplan/internal/model"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile_JSONKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "client.json",
		`{"firstName":"Ada","annualIncome":120000,"assets":[{"id":"a1","type":"roth-ira","value":5000,"taxTreatment":"tax-free"}]}`)

	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want Ada", p.FirstName)
	}
	if p.RetirementAge != 65 {
		t.Errorf("RetirementAge = %d, want default 65", p.RetirementAge)
	}
	if p.HealthStatus != model.HealthGood {
		t.Errorf("HealthStatus = %q, want default good", p.HealthStatus)
	}
	if len(p.Assets) != 1 || p.Assets[0].TaxTreatment != model.TaxFree {
		t.Errorf("Assets = %+v, want one tax-free asset", p.Assets)
	}
	if p.Liabilities == nil {
		t.Error("Liabilities = nil, want empty slice")
	}
}

func TestReadFile_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "client.toml",
		`firstName = "Grace"`,
		`dateOfBirth = 1975-06-01`,
		`annualIncome = 90000`,
		`dependents = 2`,
		``,
		`[[liabilities]]`,
		`id = "l1"`,
		`type = "mortgage"`,
		`balance = 210000.0`,
	)

	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.DateOfBirth != "1975-06-01" {
		t.Errorf("DateOfBirth = %q, want 1975-06-01", p.DateOfBirth)
	}
	if p.AnnualIncome != 90000 {
		t.Errorf("AnnualIncome = %v, want 90000", p.AnnualIncome)
	}
	if p.Dependents != 2 {
		t.Errorf("Dependents = %d, want 2", p.Dependents)
	}
	if len(p.Liabilities) != 1 || p.Liabilities[0].Balance != 210000 {
		t.Errorf("Liabilities = %+v", p.Liabilities)
	}
}

func TestParseFile_LogLatestWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "intake.jsonl",
		`{"type":"note","timestamp":"2025-06-01T09:00:00Z","text":"called client"}`,
		`{"type":"profile","timestamp":"2025-06-01T10:00:00Z","sessionId":"s-42","profile":{"firstName":"Old","assets":[{"id":"x","type":"cd","value":1,"taxTreatment":"taxable"}]}}`,
		`{"type":"profile","timestamp":"2025-06-01T12:00:00Z","profile":{"firstName":"New"}}`,
		`{"type":"profile","timestamp":"2025-06-01T11:00:00Z","profile":{"firstName":"Middle"}}`,
		`{"type":"profile", broken`,
		``,
	)

	res := ParseFile(DiscoveredFile{Path: path, Format: FormatJSONL, SessionID: "intake"})
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.Profile.FirstName != "New" {
		t.Errorf("FirstName = %q, want New (latest timestamp)", res.Profile.FirstName)
	}
	if res.Snapshots != 3 {
		t.Errorf("Snapshots = %d, want 3", res.Snapshots)
	}
	if res.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", res.ParseErrors)
	}
	if res.SessionID != "s-42" {
		t.Errorf("SessionID = %q, want s-42", res.SessionID)
	}
}

func TestParseFile_LogWithoutProfile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.jsonl", `{"type":"note"}`)
	res := ParseFile(DiscoveredFile{Path: path, Format: FormatJSONL})
	if !errors.Is(res.Err, ErrNoProfile) {
		t.Fatalf("Err = %v, want ErrNoProfile", res.Err)
	}
}

func TestParseFile_BadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{"firstName":`)
	if _, err := ReadFile(path); err == nil {
		t.Fatal("ReadFile succeeded on truncated JSON")
	}
}

func TestExtractTopLevelType(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`{"type":"profile"}`, "profile"},
		{`{"profile":{"assets":[{"type":"cd"}]},"type":"note"}`, "note"},
		{`{"profile":{"assets":[{"type":"cd"}]}}`, ""},
		{`{"text":"type","type": "profile"}`, "profile"},
		{`{"type":null}`, ""},
	}
	for _, tt := range tests {
		if got := extractTopLevelType([]byte(tt.line)); got != tt.want {
			t.Errorf("extractTopLevelType(%s) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
