package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/company/fastapi-configurator/internal/bundle"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/ui"
)

const fixtureDir = "../../testdata/template"

type result struct {
	stdout string
	stderr string
	err    error
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"BUNDLE_URL", "BUNDLE_TOKEN", "OUTPUT_DIR", "TIMEOUT", "DEBUG", "NO_COLOR"} {
		t.Setenv("FASTAPI_CONFIGURATOR_"+k, "")
		os.Unsetenv("FASTAPI_CONFIGURATOR_" + k)
	}

	app := NewApp("1.2.3", "abc1234", "2026-01-02")
	var out, errb bytes.Buffer
	app.SetOutput(&out, &errb)
	app.interactive = func() bool { return false }
	return app, &out, &errb
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	app, out, errb := newTestApp(t)
	app.SetArgs(append([]string{"--no-color"}, args...))
	err := app.Execute()
	return result{stdout: out.String(), stderr: errb.String(), err: err}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func zipEntries(t *testing.T, path string) map[string]bool {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func TestGenerateZip(t *testing.T) {
	out := t.TempDir()
	r := run(t, "generate", "--templates", fixtureDir, "--out", out)
	require.NoError(t, r.err, r.stderr)

	path := filepath.Join(out, "my_project.zip")
	entries := zipEntries(t, path)
	assert.True(t, entries["my_project/README.md"])
	assert.True(t, entries["my_project/backend/app/agents/assistant.py"])
	assert.False(t, entries["my_project/backend/app/agents/crewai_assistant.py"])

	assert.Contains(t, r.stdout, "OK Created "+path)
	assert.Contains(t, r.stdout, "sha256:")
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateRefusesToOverwrite(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, run(t, "generate", "--templates", fixtureDir, "--out", out).err)

	r := run(t, "generate", "--templates", fixtureDir, "--out", out)
	assert.Equal(t, exitcodes.UsageError, exitCode(t, r.err))
	assert.Contains(t, r.err.Error(), "--force")

	require.NoError(t, run(t, "generate", "--templates", fixtureDir, "--out", out, "--force").err)
}

func TestGenerateExtract(t *testing.T) {
	out := t.TempDir()
	r := run(t, "generate", "--templates", fixtureDir, "--out", out, "--extract",
		"--preset", "minimal", "--set", "project_name=tiny_api")
	require.NoError(t, r.err, r.stderr)

	root := filepath.Join(out, "tiny_api")
	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# tiny_api"))
	assert.NoDirExists(t, filepath.Join(root, "backend", "app", "agents"))
	assert.NoFileExists(t, filepath.Join(root, "docker-compose.yml"))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directories are cleaned up")

	r = run(t, "generate", "--templates", fixtureDir, "--out", out, "--extract", "--set", "project_name=tiny_api")
	assert.Equal(t, exitcodes.UsageError, exitCode(t, r.err))
	require.NoError(t, run(t, "generate", "--templates", fixtureDir, "--out", out, "--extract", "--force", "--set", "project_name=tiny_api").err)
	assert.FileExists(t, filepath.Join(root, "backend", "app", "agents", "assistant.py"))
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"invalid port", []string{"--set", "backend_port=80"}, exitcodes.ValidationError},
		{"invalid name", []string{"--set", "project_name=My-App"}, exitcodes.ValidationError},
		{"unknown field", []string{"--set", "colour=blue"}, exitcodes.ValidationError},
		{"malformed set", []string{"--set", "database"}, exitcodes.UsageError},
		{"unknown preset", []string{"--preset", "huge"}, exitcodes.UsageError},
		{"preset and answers", []string{"--preset", "minimal", "--answers", "x.yml"}, exitcodes.UsageError},
		{"missing answers", []string{"--answers", "does-not-exist.yml"}, exitcodes.ConfigError},
		{"positional args", []string{"extra"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", "--templates", fixtureDir, "--out", t.TempDir()}, tt.args...)
			r := run(t, args...)
			require.Error(t, r.err)
			if tt.code >= 0 {
				assert.Equal(t, tt.code, exitCode(t, r.err))
			}
		})
	}
}

func TestGenerateMissingTemplates(t *testing.T) {
	r := run(t, "generate", "--templates", filepath.Join(t.TempDir(), "nope"), "--out", t.TempDir())
	assert.Equal(t, exitcodes.NetworkError, exitCode(t, r.err))
	assert.Contains(t, r.err.Error(), "failed to load templates")
}

func TestGenerateFromServedBundle(t *testing.T) {
	b, _, err := bundle.Build(fixtureDir)
	require.NoError(t, err)
	h, err := bundle.NewHandler(b)
	require.NoError(t, err)
	server := httptest.NewServer(h.Router("tok"))
	defer server.Close()

	out := t.TempDir()
	r := run(t, "generate", "--templates", server.URL+"/", "--out", out)
	assert.Equal(t, exitcodes.NetworkError, exitCode(t, r.err))

	app, _, errb := newTestApp(t)
	t.Setenv("FASTAPI_CONFIGURATOR_BUNDLE_TOKEN", "tok")
	app.SetArgs([]string{"--no-color", "generate", "--templates", server.URL + "/", "--out", out})
	require.NoError(t, app.Execute(), errb.String())
	assert.FileExists(t, filepath.Join(out, "my_project.zip"))
}

func TestAnswersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.yml")

	r := run(t, "answers", "init", answers, "--preset", "production", "--set", "project_name=shop")
	require.NoError(t, r.err, r.stderr)
	data, err := os.ReadFile(answers)
	require.NoError(t, err)
	assert.Contains(t, string(data), "preset: production")
	assert.Contains(t, string(data), "# Derived context")

	r = run(t, "answers", "init", answers)
	assert.Equal(t, exitcodes.UsageError, exitCode(t, r.err))

	r = run(t, "answers", "show", answers)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "shop")
	assert.Contains(t, r.stdout, "[K8s]")

	out := t.TempDir()
	r = run(t, "generate", "--templates", fixtureDir, "--answers", answers, "--out", out, "--set", "enable_kubernetes=false")
	require.NoError(t, r.err, r.stderr)
	entries := zipEntries(t, filepath.Join(out, "shop.zip"))
	assert.False(t, entries["shop/kubernetes/deployment.yaml"])
	assert.True(t, entries["shop/backend/app/core/cache.py"])
}

func TestExportCommand(t *testing.T) {
	r := run(t, "export", "command", "--one-line", "--set", "enable_redis=true")
	require.NoError(t, r.err)
	assert.Equal(t, "fastapi-fullstack create my_project --frontend nextjs --ai-agent --redis\n", r.stdout)

	r = run(t, "export", "command", "--preset", "minimal")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, " \\\n  --no-docker")
	assert.NotContains(t, r.stdout, "--ai-agent")
}

func TestExportCommandCopy(t *testing.T) {
	app, out, _ := newTestApp(t)
	var term bytes.Buffer
	// no system clipboard: falls back to OSC 52 on the terminal
	app.clipboard = &ui.Clipboard{Terminal: &term}
	app.SetArgs([]string{"--no-color", "export", "command", "--copy"})
	require.NoError(t, app.Execute())

	assert.Contains(t, out.String(), "fastapi-fullstack create")
	assert.Contains(t, out.String(), "Copied to clipboard via terminal (OSC 52)")
	assert.Contains(t, term.String(), "\x1b]52;")
}

func TestExportJSON(t *testing.T) {
	r := run(t, "export", "json", "--out", "-", "--set", "database=sqlite")
	require.NoError(t, r.err)

	var ctx map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &ctx))
	assert.Equal(t, "sqlite", ctx["database"])
	assert.Equal(t, true, ctx["use_sqlite"])
	assert.Equal(t, false, ctx["use_postgresql"])

	dir := t.TempDir()
	path := filepath.Join(dir, "ctx", "cookiecutter.json")
	require.NoError(t, run(t, "export", "json", "--out", path).err)
	assert.FileExists(t, path)
	assert.Equal(t, exitcodes.UsageError, exitCode(t, run(t, "export", "json", "--out", path).err))
}

func TestPresets(t *testing.T) {
	r := run(t, "presets")
	require.NoError(t, r.err)
	for _, name := range []string{"minimal", "production", "ai-agent"} {
		assert.Contains(t, r.stdout, name)
	}

	r = run(t, "presets", "minimal")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Database")

	assert.Equal(t, exitcodes.UsageError, exitCode(t, run(t, "presets", "huge").err))
}

func TestBundleBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site", "templates.json")
	r := run(t, "bundle", "build", fixtureDir, "--out", out)
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "1 skipped")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	b, err := bundle.Decode(data)
	require.NoError(t, err)
	assert.Contains(t, b.Files, "README.md")

	r = run(t, "generate", "--templates", out, "--out", t.TempDir())
	require.NoError(t, r.err, r.stderr)
}

func TestNewRequiresTerminal(t *testing.T) {
	r := run(t, "new", "my_app")
	assert.Equal(t, exitcodes.UsageError, exitCode(t, r.err))
	assert.Contains(t, r.err.Error(), "generate")
}

func TestReplayHint(t *testing.T) {
	cfg, err := project.WithPreset("minimal")
	require.NoError(t, err)
	assert.Equal(t, "fastapi-configurator generate --preset minimal", replayHint("minimal", cfg))

	cfg.ProjectName = "shop_api"
	assert.Equal(t, "fastapi-configurator generate --preset minimal --set project_name=shop_api", replayHint("minimal", cfg))
	assert.Equal(t, "fastapi-configurator generate", replayHint("", project.Default()))
}

func TestVersion(t *testing.T) {
	r := run(t, "version")
	require.NoError(t, r.err)
	assert.Equal(t, "fastapi-configurator 1.2.3 (commit: abc1234, built: 2026-01-02)\n", r.stdout)
}

func TestSettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	out := t.TempDir()
	content := "bundle_url: " + fixtureDir + "\noutput_dir: " + out + "\n"
	require.NoError(t, os.WriteFile(settings, []byte(content), 0o644))

	r := run(t, "--settings", settings, "generate")
	require.NoError(t, r.err, r.stderr)
	assert.FileExists(t, filepath.Join(out, "my_project.zip"))

	r = run(t, "--settings", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.Equal(t, exitcodes.ConfigError, exitCode(t, r.err))
}
