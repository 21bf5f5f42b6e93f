package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianshield/shieldplan/internal/source"
)

const completeProfile = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com",` +
	`"dateOfBirth":"1985-11-30","state":"CA","annualIncome":150000,"dependents":2}`

// isolate points config, data and the store at a temp dir for one test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	prevDB, prevNow, prevQuiet, prevSession := flagDB, flagNow, flagQuiet, flagSession
	flagDB = filepath.Join(dir, "data", "test.db")
	flagNow = "2025-06-01"
	flagQuiet = true
	flagSession = ""
	t.Cleanup(func() {
		flagDB, flagNow, flagQuiet, flagSession = prevDB, prevNow, prevQuiet, prevSession
	})
	return dir
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"serve", "--addr", ":9000"}, got)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "postgres...5432", maskSecret("postgres://u:p@db:5432"))
	assert.Equal(t, "abcd...", maskSecret("abcdefgh"))
	assert.Equal(t, "****", maskSecret("abc"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 2, exitCode(&exitError{code: 2, err: errors.New("absent")}))
}

func TestLoadProfileAbsentExitsTwo(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	e, err := openEnv(ctx, "nobody")
	require.NoError(t, err)
	defer e.Close()

	_, err = loadProfile(ctx, e)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, err.Error(), `"nobody"`)
}

func TestImportFilesPerSession(t *testing.T) {
	dir := isolate(t)
	clients := filepath.Join(dir, "clients")
	require.NoError(t, os.MkdirAll(clients, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(clients, "Ada Lovelace.json"), []byte(completeProfile), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(clients, "grace.json"),
		[]byte(`{"firstName":"Grace","annualIncome":90000}`), 0o600))

	files, err := source.Discover(clients)
	require.NoError(t, err)
	require.Len(t, files, 2)

	err = importFiles(context.Background(), files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	ctx := context.Background()
	e, err := openEnv(ctx, "ada-lovelace")
	require.NoError(t, err)
	defer e.Close()

	done, err := e.session.AssessmentCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	p, err := loadProfile(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName())

	g, err := openEnv(ctx, "grace")
	require.NoError(t, err)
	defer g.Close()
	done, err = g.session.AssessmentCompleted(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestSaveTokenRoundTrip(t *testing.T) {
	isolate(t)

	assert.Empty(t, loadTokens())
	require.NoError(t, saveToken("http://127.0.0.1:8787", "tok-1"))
	require.NoError(t, saveToken("http://other:8787", "tok-2"))
	require.NoError(t, saveToken("http://127.0.0.1:8787", "tok-3"))

	assert.Equal(t, map[string]string{
		"http://127.0.0.1:8787": "tok-3",
		"http://other:8787":     "tok-2",
	}, loadTokens())
}
