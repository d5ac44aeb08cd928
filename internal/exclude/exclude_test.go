package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/company/fastapi-configurator/internal/cookiecutter"
	"github.com/company/fastapi-configurator/internal/project"
)

func resolveFor(t *testing.T, mutate func(c *project.Config)) *Set {
	t.Helper()
	cfg := project.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	return Resolve(cookiecutter.Project(project.Resolve(cfg)))
}

func TestSetSegmentMatching(t *testing.T) {
	s := NewSet()
	s.Add("backend/app/worker/")
	s.Add("frontend/")
	s.Add("backend/.env")

	tests := []struct {
		path string
		want bool
	}{
		{"backend/app/worker/celery_app.py", true},
		{"backend/app/worker/tasks/examples.py", true},
		{"backend/app/workers-extra/x.py", false},
		{"backend/app/worker", false},
		{"frontend/package.json", true},
		{"frontend-legacy/index.ts", false},
		{"backend/.env", true},
		{"backend/.env.example", false},
		{"./frontend/src/app.tsx", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Excluded(tt.path), tt.path)
	}

	assert.Equal(t, []string{"backend/.env", "backend/app/worker/", "frontend/"}, s.Paths())
	assert.Equal(t, 3, s.Len())
}

func TestResolveIsDeterministic(t *testing.T) {
	for _, name := range append([]string{""}, project.PresetNames()...) {
		cfg, err := project.WithPreset(name)
		require.NoError(t, err)
		ctx := cookiecutter.Project(cfg)
		a, b := Resolve(ctx), Resolve(ctx)
		assert.True(t, a.Equal(b), name)
	}
}

func TestDefaultConfiguration(t *testing.T) {
	s := resolveFor(t, nil)

	assert.False(t, s.Excluded("backend/app/agents/assistant.py"))
	for _, f := range []string{"langchain", "langgraph", "crewai", "deepagents"} {
		assert.True(t, s.Excluded("backend/app/agents/"+f+"_assistant.py"), f)
	}
	assert.False(t, s.Excluded("frontend/package.json"))
	assert.False(t, s.Excluded(".github/workflows/ci.yml"))
	assert.True(t, s.Excluded(".gitlab-ci.yml"))
	assert.False(t, s.Excluded("backend/app/api/routes/v1/items.py"))
	assert.True(t, s.Excluded("backend/app/worker/celery_app.py"))
	assert.True(t, s.Excluded("nginx/nginx.conf"))
	assert.True(t, s.Excluded("frontend/messages/en.json"), "i18n is off by default")
	assert.False(t, s.Excluded("backend/app/api/routes/v1/auth.py"))
	assert.False(t, s.Excluded("docker-compose.yml"))
}

func TestMinimalPreset(t *testing.T) {
	cfg, err := project.WithPreset("minimal")
	require.NoError(t, err)
	s := Resolve(cookiecutter.Project(cfg))

	assert.True(t, s.Excluded("backend/app/agents/assistant.py"))
	assert.True(t, s.Excluded("backend/app/api/routes/v1/agent.py"))
	assert.True(t, s.Excluded("backend/app/api/routes/v1/items.py"))
	assert.True(t, s.Excluded("kubernetes/deployment.yaml"))
	assert.True(t, s.Excluded("nginx/nginx.conf"))
	assert.True(t, s.Excluded("docker-compose.yml"))
	assert.True(t, s.Excluded("backend/Dockerfile"))
	assert.True(t, s.Excluded(".github/workflows/ci.yml"))
	assert.True(t, s.Excluded("backend/app/core/security.py"))
}

func TestNoDatabaseDropsScaffolds(t *testing.T) {
	s := resolveFor(t, func(c *project.Config) {
		c.Database = project.DatabaseNone
		c.IncludeExampleCRUD = true
		c.EnableWebhooks = true
		c.EnableSessionManagement = true
		c.EnableConversationPersistence = true
	})
	for _, f := range []string{
		"api/routes/v1/items.py",
		"db/models/item.py",
		"api/routes/v1/conversations.py",
		"schemas/conversation.py",
		"services/webhook.py",
		"api/routes/v1/sessions.py",
		"schemas/session.py",
		"db/models/session.py",
		"admin.py",
	} {
		assert.True(t, s.Excluded("backend/app/"+f), f)
	}
}

func TestDatabaseKeepsPersistenceScaffolds(t *testing.T) {
	s := resolveFor(t, func(c *project.Config) {
		c.EnableSessionManagement = true
		c.EnableConversationPersistence = true
	})
	for _, f := range []string{
		"api/routes/v1/conversations.py",
		"schemas/conversation.py",
		"api/routes/v1/sessions.py",
		"schemas/session.py",
	} {
		assert.False(t, s.Excluded("backend/app/"+f), f)
	}
}

func TestNoFrontend(t *testing.T) {
	s := resolveFor(t, func(c *project.Config) { c.Frontend = project.FrontendNone })
	assert.True(t, s.Excluded("frontend/src/app/page.tsx"))
	assert.True(t, s.Excluded("frontend/.env.local"))
	cfg := project.Default()
	cfg.Frontend = project.FrontendNone
	fired := Triggered(cookiecutter.Project(cfg))
	assert.Contains(t, fired, "frontend")
	assert.NotContains(t, fired, "i18n")
}

func TestWorkerBackends(t *testing.T) {
	s := resolveFor(t, func(c *project.Config) { c.BackgroundTasks = project.BackgroundTasksTaskiq })
	assert.False(t, s.Excluded("backend/app/worker/taskiq_app.py"))
	assert.False(t, s.Excluded("backend/app/worker/__init__.py"))
	assert.True(t, s.Excluded("backend/app/worker/celery_app.py"))
	assert.True(t, s.Excluded("backend/app/worker/tasks/schedules.py"))
	assert.True(t, s.Excluded("backend/app/worker/arq_app.py"))
}

func TestAPIKeyOnlyKeepsSecurity(t *testing.T) {
	s := resolveFor(t, func(c *project.Config) { c.Auth = project.AuthAPIKey })
	assert.False(t, s.Excluded("backend/app/core/security.py"))
	assert.True(t, s.Excluded("backend/app/schemas/token.py"))
	assert.True(t, s.Excluded("backend/app/api/routes/v1/sessions.py"))
}

func TestAdminNeedsSQLAlchemy(t *testing.T) {
	on := func(c *project.Config) { c.EnableAdminPanel = true }
	assert.False(t, resolveFor(t, on).Excluded("backend/app/admin.py"))

	assert.True(t, resolveFor(t, func(c *project.Config) {
		on(c)
		c.ORMType = project.ORMSQLModel
	}).Excluded("backend/app/admin.py"))

	assert.True(t, resolveFor(t, func(c *project.Config) {
		on(c)
		c.Database = project.DatabaseMongoDB
	}).Excluded("backend/app/admin.py"))
}
