package exclude

import (
	"github.com/company/fastapi-configurator/internal/cookiecutter"
)

const appDir = "backend/app/"

// rule drops paths unless keep holds for the context. Rules never read each
// other's output.
type rule struct {
	name  string
	keep  func(c *cookiecutter.Context) bool
	paths []string
}

func flag(key string) func(c *cookiecutter.Context) bool {
	return func(c *cookiecutter.Context) bool { return c.Bool(key) }
}

func allOf(keys ...string) func(c *cookiecutter.Context) bool {
	return func(c *cookiecutter.Context) bool {
		for _, k := range keys {
			if !c.Bool(k) {
				return false
			}
		}
		return true
	}
}

func anyOf(keys ...string) func(c *cookiecutter.Context) bool {
	return func(c *cookiecutter.Context) bool {
		for _, k := range keys {
			if c.Bool(k) {
				return true
			}
		}
		return false
	}
}

func app(paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = appDir + p
	}
	return out
}

// scaffold lists the five files of one CRUD-style feature module.
func scaffold(route, model string) []string {
	return app(
		"api/routes/v1/"+route+".py",
		"db/models/"+model+".py",
		"repositories/"+model+".py",
		"services/"+model+".py",
		"schemas/"+model+".py",
	)
}

var rules = []rule{
	{"ai-agent", flag(cookiecutter.KeyEnableAIAgent), app("agents/", "api/routes/v1/agent.py")},
	{"ai-pydantic-ai", frameworkFile(cookiecutter.KeyUsePydanticAI), app("agents/assistant.py")},
	{"ai-langchain", frameworkFile(cookiecutter.KeyUseLangChain), app("agents/langchain_assistant.py")},
	{"ai-langgraph", frameworkFile(cookiecutter.KeyUseLangGraph), app("agents/langgraph_assistant.py")},
	{"ai-crewai", frameworkFile(cookiecutter.KeyUseCrewAI), app("agents/crewai_assistant.py")},
	{"ai-deepagents", frameworkFile(cookiecutter.KeyUseDeepAgents), app("agents/deepagents_assistant.py")},

	{"example-crud", allOf(cookiecutter.KeyIncludeExampleCRUD, cookiecutter.KeyUseDatabase), scaffold("items", "item")},
	{"conversations", allOf(cookiecutter.KeyEnableConversationPersistence, cookiecutter.KeyUseDatabase), scaffold("conversations", "conversation")},
	{"webhooks", allOf(cookiecutter.KeyEnableWebhooks, cookiecutter.KeyUseDatabase), scaffold("webhooks", "webhook")},
	{"sessions", allOf(cookiecutter.KeyEnableSessionManagement, cookiecutter.KeyUseJWT, cookiecutter.KeyUseDatabase), scaffold("sessions", "session")},

	{"websockets", flag(cookiecutter.KeyEnableWebSockets), app("api/routes/v1/ws.py")},
	{"admin", func(c *cookiecutter.Context) bool {
		return c.Bool(cookiecutter.KeyEnableAdminPanel) &&
			(c.Bool(cookiecutter.KeyUsePostgreSQL) || c.Bool(cookiecutter.KeyUseSQLite)) &&
			c.Bool(cookiecutter.KeyUseSQLAlchemy)
	}, app("admin.py")},

	{"redis", flag(cookiecutter.KeyEnableRedis), app("clients/redis.py")},
	{"caching", flag(cookiecutter.KeyEnableCaching), app("core/cache.py")},
	{"rate-limiting", flag(cookiecutter.KeyEnableRateLimiting), app("core/rate_limit.py")},
	{"oauth", flag(cookiecutter.KeyEnableOAuth), app("api/routes/v1/oauth.py", "core/oauth.py")},
	{"security", anyOf(cookiecutter.KeyUseJWT, cookiecutter.KeyUseAPIKey), app("core/security.py")},
	{"users", flag(cookiecutter.KeyUseJWT), app(
		"api/routes/v1/auth.py",
		"api/routes/v1/users.py",
		"db/models/user.py",
		"repositories/user.py",
		"services/user.py",
		"schemas/user.py",
		"schemas/token.py",
	)},
	{"logfire", flag(cookiecutter.KeyEnableLogfire), app("core/logfire_setup.py")},

	{"worker", anyOf(cookiecutter.KeyUseCelery, cookiecutter.KeyUseTaskiq, cookiecutter.KeyUseARQ), app("worker/")},
	{"worker-celery", backendFile(cookiecutter.KeyUseCelery), app(
		"worker/celery_app.py",
		"worker/tasks/examples.py",
		"worker/tasks/schedules.py",
	)},
	{"worker-taskiq", backendFile(cookiecutter.KeyUseTaskiq), app("worker/taskiq_app.py", "worker/tasks/taskiq_examples.py")},
	{"worker-arq", backendFile(cookiecutter.KeyUseARQ), app("worker/arq_app.py")},

	{"github-actions", flag(cookiecutter.KeyUseGitHubActions), []string{".github/"}},
	{"gitlab-ci", flag(cookiecutter.KeyUseGitLabCI), []string{".gitlab-ci.yml"}},
	{"docker", flag(cookiecutter.KeyEnableDocker), []string{
		"docker-compose.yml",
		"docker-compose.dev.yml",
		"docker-compose.prod.yml",
		"backend/Dockerfile",
		"backend/.dockerignore",
		"frontend/Dockerfile",
		"frontend/.dockerignore",
	}},
	{"kubernetes", flag(cookiecutter.KeyEnableKubernetes), []string{"kubernetes/"}},
	{"nginx", flag(cookiecutter.KeyUseNginx), []string{"nginx/"}},
	{"frontend", flag(cookiecutter.KeyUseFrontend), []string{"frontend/"}},
	{"env-files", flag(cookiecutter.KeyGenerateEnv), []string{"backend/.env", "frontend/.env.local"}},
	{"i18n", func(c *cookiecutter.Context) bool {
		return !c.Bool(cookiecutter.KeyUseFrontend) || c.Bool(cookiecutter.KeyEnableI18n)
	}, []string{
		"frontend/src/middleware.ts",
		"frontend/src/i18n.ts",
		"frontend/messages/",
		"frontend/src/components/language-switcher.tsx",
	}},
}

// frameworkFile keeps a framework file when the agent is off (the whole
// directory is already gone) or when that framework is selected.
func frameworkFile(key string) func(c *cookiecutter.Context) bool {
	return func(c *cookiecutter.Context) bool {
		return !c.Bool(cookiecutter.KeyEnableAIAgent) || c.Bool(key)
	}
}

func backendFile(key string) func(c *cookiecutter.Context) bool {
	return func(c *cookiecutter.Context) bool {
		anyBackend := c.Bool(cookiecutter.KeyUseCelery) || c.Bool(cookiecutter.KeyUseTaskiq) || c.Bool(cookiecutter.KeyUseARQ)
		return !anyBackend || c.Bool(key)
	}
}

// Resolve computes the exclusion set for ctx. It is recomputed on every
// call; callers must not keep it across configuration edits.
func Resolve(ctx *cookiecutter.Context) *Set {
	s := NewSet()
	for _, r := range rules {
		if r.keep(ctx) {
			continue
		}
		for _, p := range r.paths {
			s.Add(p)
		}
	}
	return s
}

// Triggered returns the names of the rules that fired for ctx, in table order.
func Triggered(ctx *cookiecutter.Context) []string {
	var out []string
	for _, r := range rules {
		if !r.keep(ctx) {
			out = append(out, r.name)
		}
	}
	return out
}
