package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/plza-save-editor/internal/adapters/codec/swish"
	"github.com/bnema/plza-save-editor/internal/application"
	"github.com/bnema/plza-save-editor/internal/catalog"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/fixtures"
	"github.com/bnema/plza-save-editor/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestInspectRendersSummary(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)

	stdout, _, err := executeCLI(t, home, "inspect", savePath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "main")
	assert.Contains(t, stdout, fixtures.Name)
	assert.Contains(t, stdout, "123456")
	assert.Contains(t, stdout, "Potion")
}

func TestInspectJSONOutput(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)

	stdout, _, err := executeCLI(t, home, "inspect", savePath, "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out summaryJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, fixtures.Name, out.Profile.Name)
	assert.Equal(t, fixtures.TrainerID, out.Profile.TrainerID)
	assert.Equal(t, uint32(15), out.Inventory[5].Quantity)
}

func TestInspectRejectsNonSave(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	_, _, err := executeCLI(t, home, "inspect", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidContainer)
}

func TestApplyInlineChanges(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)
	outPath := filepath.Join(home, "main.edited")

	stdout, _, err := executeCLI(t, home,
		"apply", savePath,
		"--changes", `{"profile":{"name":"Ash","gender":0},"inventory":{"bag_5":1200}}`,
		"--out", outPath,
		"--quiet",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote ")

	summary := inspectFile(t, outPath)
	assert.Equal(t, "Ash", summary.Profile.Name)
	assert.Equal(t, domain.GenderMale, summary.Profile.Gender)
	assert.Equal(t, uint32(999), summary.Inventory[5].Quantity)
}

func TestApplyChangesFromFile(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)
	outPath := filepath.Join(home, "main.edited")
	changesPath := filepath.Join(home, "changes.json")
	require.NoError(t, os.WriteFile(changesPath, []byte(`{"core":{"tid":42},"bag":{"1":7}}`), 0o600))

	_, _, err := executeCLI(t, home,
		"apply", savePath,
		"--changes", "@"+changesPath,
		"--out", outPath,
	)
	require.NoError(t, err)

	summary := inspectFile(t, outPath)
	assert.Equal(t, uint32(42), summary.Profile.TrainerID)
	assert.Equal(t, uint32(7), summary.Inventory[1].Quantity)
	assert.Equal(t, domain.ItemCategoryBalls, summary.Inventory[1].Category)
}

func TestApplyCanOverwriteInput(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)

	_, _, err := executeCLI(t, home, "apply", savePath, "--changes", `{"profile":{"language":3}}`, "--out", savePath, "-q")
	require.NoError(t, err)

	summary := inspectFile(t, savePath)
	assert.Equal(t, domain.LanguageFrench, summary.Profile.Language)
	assert.Equal(t, fixtures.Name, summary.Profile.Name)

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApplyRequiresOutFlag(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)

	_, _, err := executeCLI(t, home, "apply", savePath, "--changes", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"out\" not set")
}

func TestApplyRejectsInvalidChanges(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)
	outPath := filepath.Join(home, "main.edited")

	_, _, err := executeCLI(t, home, "apply", savePath, "--changes", `{"profile":{"tid":"abc"}}`, "--out", outPath, "-q")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidChange)
	assert.NoFileExists(t, outPath)

	_, _, err = executeCLI(t, home, "apply", savePath, "--changes", `{not json`, "--out", outPath, "-q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse changes")
}

func TestConfigFileSelectsBackend(t *testing.T) {
	home := t.TempDir()
	savePath := writeSaveFixture(t, home)
	configPath := filepath.Join(home, "plza.toml")

	for _, backend := range []string{"memory", "ristretto", "bigcache"} {
		require.NoError(t, os.WriteFile(configPath, []byte("[sessions]\nbackend = \""+backend+"\"\n"), 0o600))

		_, _, err := executeCLI(t, home, "--config", configPath, "inspect", savePath, "--json")
		require.NoError(t, err, backend)
	}

	require.NoError(t, os.WriteFile(configPath, []byte("[sessions]\nbackend = \"redis\"\n"), 0o600))
	_, _, err := executeCLI(t, home, "--config", configPath, "inspect", savePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sessions.backend")
}

func TestServeStopsWhenContextEnds(t *testing.T) {
	home := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := executeCLIContext(t, ctx, home, "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "serving on http://127.0.0.1:")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIContext(t, context.Background(), home, args...)
}

func executeCLIContext(t *testing.T, ctx context.Context, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeSaveFixture(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "main")
	require.NoError(t, os.WriteFile(path, fixtures.Blob(), 0o600))
	return path
}

func inspectFile(t *testing.T, path string) domain.SaveSummary {
	t.Helper()

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	container, err := swish.New().Decode(blob)
	require.NoError(t, err)
	cat, err := catalog.Default()
	require.NoError(t, err)
	summary, err := application.Project(container, cat)
	require.NoError(t, err)
	return summary
}

func TestRunSpinnerReturnsTaskError(t *testing.T) {
	var out bytes.Buffer
	taskErr := errors.New("boom")

	err := runSpinner(context.Background(), &out, "working...", func(context.Context) error {
		return taskErr
	})
	require.ErrorIs(t, err, taskErr)
	assert.False(t, isTerminal(&out))
}
