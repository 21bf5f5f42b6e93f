package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/store"
)

// TestStoreIntegration runs the session contract against a live database.
func TestStoreIntegration(t *testing.T) {
	dbURL := os.Getenv("SHIELDPLAN_PG_TEST_URL")
	if dbURL == "" {
		t.Skip("set SHIELDPLAN_PG_TEST_URL to run this integration test")
	}

	ctx := context.Background()
	pg, err := New(ctx, dbURL)
	require.NoError(t, err)
	defer func() { _ = pg.Close() }()

	sid := fmt.Sprintf("pgtest_%d", time.Now().UnixNano())
	s := store.NewSession(pg, sid)
	defer func() { _ = s.Clear(ctx) }()

	_, err = s.Load(ctx)
	assert.True(t, errors.Is(err, store.ErrAbsent), "Load() err = %v", err)

	p := model.NewProfile()
	p.FirstName, p.LastName, p.Email = "Pat", "Kim", "pat@example.com"
	p.DateOfBirth, p.State, p.AnnualIncome = "1988-03-03", "OR", 90000
	require.NoError(t, s.Commit(ctx, p))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.FirstName, got.FirstName)
	assert.Equal(t, p.AnnualIncome, got.AnnualIncome)

	require.NoError(t, s.MarkDerivedFlowEntered(ctx, true))
	entered, err := s.DerivedFlowEntered(ctx)
	require.NoError(t, err)
	assert.True(t, entered)

	require.NoError(t, pg.WriteProfile(ctx, sid, []byte(`{"firstName": 1}`), time.Now()))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, store.ErrAbsent)
}

func TestRegisteredDriver(t *testing.T) {
	assert.Contains(t, store.Drivers(), "postgres")
	_, err := store.Open(context.Background(), store.Options{Driver: "postgres"})
	assert.Error(t, err)
}
