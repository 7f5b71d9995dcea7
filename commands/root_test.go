package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = "2025-01-15T17:00:00Z"

// cliEnv is an isolated config, log file and settings database.
type cliEnv struct {
	dir    string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("timezone: UTC\nlog_file: %s\nsettings_db: %s\n",
		filepath.Join(dir, "logs", "app.log"), filepath.Join(dir, "settings.db"))
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0644))
	return &cliEnv{dir: dir, config: cfg}
}

// appendConfig adds YAML to the environment's config file.
func appendConfig(t *testing.T, e *cliEnv, yaml string) {
	t.Helper()
	f, err := os.OpenFile(e.config, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(yaml)
	require.NoError(t, err)
}

// run executes the CLI with the welcome screen suppressed.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	return e.runWithWelcome(t, append([]string{"--no-welcome"}, args...)...)
}

func (e *cliEnv) runWithWelcome(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--now", testNow}, args...))

	err := rootCmd.Execute()
	closeApp()
	return out.String(), err
}

// resetFlags restores defaults; flag variables are package globals that
// outlive a single Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestOverview(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Workflow")
	assert.Contains(t, out, "Emails processed today:")
	assert.Contains(t, out, "10 (3 today)")
	assert.Contains(t, out, "94.2%")
}

func TestOverview_JSON(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "overview", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"emailsToday": 3`)
	assert.Contains(t, out, `"openProjects": 4`)
	assert.Contains(t, out, `"urgentCalls": 2`)
}

func TestWelcome_ShownOnce(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.runWithWelcome(t, "integrations")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to JobFlow AI")

	out, err = env.runWithWelcome(t, "integrations")
	require.NoError(t, err)
	assert.NotContains(t, out, "Welcome to JobFlow AI")

	_, err = env.runWithWelcome(t, "welcome", "--reset")
	require.NoError(t, err)

	out, err = env.runWithWelcome(t, "integrations")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to JobFlow AI")
}

func TestWelcome_SkippedForMachineOutput(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.runWithWelcome(t, "integrations", "-o", "csv")
	require.NoError(t, err)
	assert.NotContains(t, out, "Welcome")
}

func TestWelcomeCommand(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "welcome")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to JobFlow AI")
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "go-jobflow dev")
}

func TestRootFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad output", args: []string{"-o", "xml"}, wantErr: "invalid output format"},
		{name: "bad timezone", args: []string{"--timezone", "Mars/Base"}, wantErr: "invalid timezone"},
		{name: "bad now", args: []string{"--now", "yesterday"}, wantErr: "invalid --now"},
		{name: "missing data dir", args: []string{"--data", "/does/not/exist"}, wantErr: "failed to load records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	env := newCLIEnv(t)
	env.config = filepath.Join(env.dir, "absent.yaml")

	_, err := env.run(t)
	assert.Error(t, err)
}

func TestParseNow(t *testing.T) {
	got, err := parseNow("2025-01-15T17:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())

	_, err = parseNow("15/01/2025")
	assert.Error(t, err)
}
