package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/guardianshield/shieldplan/internal/model"
)

func testProfile() model.Profile {
	p := model.NewProfile()
	p.FirstName = "Lee"
	p.LastName = "Park"
	p.Email = "lee@example.com"
	p.DateOfBirth = "1982-09-09"
	p.State = "WA"
	p.AnnualIncome = 110000
	p.Assets = []model.Asset{{ID: "a1", Title: "Roth", Type: model.AssetRothIRA, Value: 40000, TaxTreatment: model.TaxFree}}
	p.Liabilities = []model.Liability{{ID: "l1", Type: model.LiabilityMortgage, Balance: 200000}}
	return p
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "shieldplan.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Backend{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestLoadAbsent(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSession(b, "empty")
			if _, err := s.Load(ctx); !errors.Is(err, ErrAbsent) {
				t.Fatalf("Load() err = %v, want ErrAbsent", err)
			}
			done, err := s.AssessmentCompleted(ctx)
			if err != nil || done {
				t.Fatalf("AssessmentCompleted() = %v, %v, want false, nil", done, err)
			}
		})
	}
}

func TestCommitLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSession(b, "s1", WithClock(func() time.Time { return time.Unix(0, 0) }))
			want := testProfile()
			if err := s.Commit(ctx, want); err != nil {
				t.Fatalf("Commit: %v", err)
			}

			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.FirstName != want.FirstName || got.AnnualIncome != want.AnnualIncome {
				t.Fatalf("Load() = %+v, want %+v", got, want)
			}
			if len(got.Assets) != 1 || got.Assets[0].TaxTreatment != model.TaxFree {
				t.Fatalf("Assets = %+v", got.Assets)
			}

			// Last write wins.
			want.AnnualIncome = 130000
			if err := s.Commit(ctx, want); err != nil {
				t.Fatalf("second Commit: %v", err)
			}
			got, _ = s.Load(ctx)
			if got.AnnualIncome != 130000 {
				t.Fatalf("AnnualIncome = %v, want 130000", got.AnnualIncome)
			}

			done, _ := s.AssessmentCompleted(ctx)
			if !done {
				t.Fatal("AssessmentCompleted() = false after commit")
			}
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewSession(b, "a")
			other := NewSession(b, "b")
			if err := a.Commit(ctx, testProfile()); err != nil {
				t.Fatalf("Commit: %v", err)
			}
			if _, err := other.Load(ctx); !errors.Is(err, ErrAbsent) {
				t.Fatalf("other session Load() err = %v, want ErrAbsent", err)
			}
		})
	}
}

func TestMalformedPayloadIsAbsent(t *testing.T) {
	ctx := context.Background()
	payloads := map[string][]byte{
		"garbage":     []byte("{not json"),
		"wrong shape": []byte(`{"firstName": 12}`),
		"incomplete":  []byte(`{"firstName":"A","filingStatus":"single","primaryGoal":"retirement","healthStatus":"good"}`),
		"bad enum":    []byte(`{"firstName":"A","lastName":"B","email":"c","dateOfBirth":"1990-01-01","state":"NY","filingStatus":"single","primaryGoal":"retirement","healthStatus":"great","annualIncome":5}`),
	}
	for name, b := range backends(t) {
		for pname, payload := range payloads {
			t.Run(name+"/"+pname, func(t *testing.T) {
				if err := b.WriteProfile(ctx, pname, payload, time.Now()); err != nil {
					t.Fatalf("WriteProfile: %v", err)
				}
				s := NewSession(b, pname)
				if _, err := s.Load(ctx); !errors.Is(err, ErrAbsent) {
					t.Fatalf("Load() err = %v, want ErrAbsent", err)
				}
			})
		}
	}
}

func TestCommitRejectsInvalidProfile(t *testing.T) {
	s := NewSession(NewMemory(), "x")
	p := testProfile()
	p.Email = ""
	if err := s.Commit(context.Background(), p); !errors.Is(err, model.ErrInvalidProfile) {
		t.Fatalf("Commit() err = %v, want ErrInvalidProfile", err)
	}
}

func TestFlagsAndClear(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSession(b, "flags")
			entered, err := s.DerivedFlowEntered(ctx)
			if err != nil || entered {
				t.Fatalf("DerivedFlowEntered() = %v, %v, want false, nil", entered, err)
			}
			if err := s.MarkDerivedFlowEntered(ctx, true); err != nil {
				t.Fatalf("MarkDerivedFlowEntered: %v", err)
			}
			if entered, _ = s.DerivedFlowEntered(ctx); !entered {
				t.Fatal("DerivedFlowEntered() = false after mark")
			}
			if err := s.Commit(ctx, testProfile()); err != nil {
				t.Fatalf("Commit: %v", err)
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if entered, _ = s.DerivedFlowEntered(ctx); entered {
				t.Fatal("flag survived Clear")
			}
			if _, err := s.Load(ctx); !errors.Is(err, ErrAbsent) {
				t.Fatalf("Load() after Clear err = %v, want ErrAbsent", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Options{Driver: "memory"})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Fatalf("Open(memory) = %T, want *Memory", b)
	}

	b, err = Open(ctx, Options{Path: filepath.Join(t.TempDir(), "p.db")})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	defer func() { _ = b.Close() }()
	if _, ok := b.(*SQLite); !ok {
		t.Fatalf("Open(default) = %T, want *SQLite", b)
	}

	if _, err := Open(ctx, Options{Driver: "oracle"}); err == nil {
		t.Fatal("Open(oracle) = nil error, want error")
	}
}

func TestSQLiteSessionCount(t *testing.T) {
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "count.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer sq.Close()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a"} {
		if err := NewSession(sq, id).Commit(ctx, testProfile()); err != nil {
			t.Fatalf("Commit(%s): %v", id, err)
		}
	}
	n, err := sq.SessionCount(ctx)
	if err != nil {
		t.Fatalf("SessionCount: %v", err)
	}
	if n != 2 {
		t.Errorf("SessionCount = %d, want 2", n)
	}
}

func TestCommitRejectsNonFiniteAmount(t *testing.T) {
	s := NewSession(NewMemory(), "inf")
	p := testProfile()
	p.TermLifeDeathBenefit = math.Inf(1)
	if err := s.Commit(context.Background(), p); !errors.Is(err, model.ErrInvalidProfile) {
		t.Fatalf("Commit() err = %v, want ErrInvalidProfile", err)
	}
}

func TestCommitResetsDerivedFlow(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSession(b, "recommit")
			if err := s.Commit(ctx, testProfile()); err != nil {
				t.Fatalf("Commit: %v", err)
			}
			if err := s.MarkDerivedFlowEntered(ctx, true); err != nil {
				t.Fatalf("MarkDerivedFlowEntered: %v", err)
			}

			if err := s.Commit(ctx, testProfile()); err != nil {
				t.Fatalf("second Commit: %v", err)
			}
			entered, err := s.DerivedFlowEntered(ctx)
			if err != nil {
				t.Fatalf("DerivedFlowEntered: %v", err)
			}
			if entered {
				t.Error("DerivedFlowEntered() = true after a new commit, want false")
			}
		})
	}
}
