package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/company/fastapi-configurator/internal/project"
)

func TestWizardRoundTripsStartConfig(t *testing.T) {
	start := project.Default()
	start.LogfireFeatures.HTTPX = true
	start.RateLimitRequests = 250

	got, err := NewWizard(start).Config()
	require.NoError(t, err)
	assert.Equal(t, project.Fingerprint(start), project.Fingerprint(got))
}

func TestWizardConfigConvertsAnswers(t *testing.T) {
	w := NewWizard(project.Default())
	w.cfg.ProjectName = "My Shop-API"
	w.backendPort = "9000"
	w.logfireParts = []string{logfireRedis}

	cfg, err := w.Config()
	require.NoError(t, err)
	assert.Equal(t, "my_shop_api", cfg.ProjectName)
	assert.Equal(t, 9000, cfg.BackendPort)
	assert.Equal(t, project.LogfireFeatures{Redis: true}, cfg.LogfireFeatures)
}

func TestWizardConfigRejectsNonNumeric(t *testing.T) {
	w := NewWizard(project.Default())
	w.poolSize = "lots"

	_, err := w.Config()
	var fe *project.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "db_pool_size", fe.Field)
}

func TestWizardFormBuilds(t *testing.T) {
	assert.NotNil(t, NewWizard(project.Default()).Form())
}

func TestOptionsUseLabels(t *testing.T) {
	opts := options(project.AvailableLLMProviders(project.Default()), project.LLMProviderLabels)
	require.Len(t, opts, 3)
	assert.Equal(t, "OpenRouter", opts[2].Key)

	cfg := project.Default()
	cfg.AIFramework = project.AIFrameworkCrewAI
	opts = options(project.AvailableLLMProviders(cfg), project.LLMProviderLabels)
	assert.Len(t, opts, 2)
}

func TestIntValidators(t *testing.T) {
	assert.NoError(t, positive(1))
	assert.Error(t, positive(0))
	assert.NoError(t, nonNegative(0))
	assert.Error(t, nonNegative(-1))
}

func TestIsCI(t *testing.T) {
	for _, k := range []string{"CI", "FASTAPI_CONFIGURATOR_CI", "GITHUB_ACTIONS", "GITLAB_CI"} {
		t.Setenv(k, "")
	}
	assert.False(t, IsCI())

	t.Setenv("GITLAB_CI", "false")
	assert.False(t, IsCI())

	t.Setenv("CI", "true")
	assert.True(t, IsCI())
	assert.False(t, IsInteractive())
}
