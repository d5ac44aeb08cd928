// Package cookiecutter projects a project.Config onto the flat context the
// template corpus renders against, and exports it as cookiecutter.json.
package cookiecutter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/company/fastapi-configurator/internal/project"
)

// Context is the flattened, ordered template context. Keys keep the order
// they were projected in so the JSON export is stable.
type Context struct {
	keys   []string
	values map[string]any
}

func newContext() *Context {
	return &Context{values: make(map[string]any, 128)}
}

func (c *Context) set(key string, v any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// Get returns the raw value for key.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Bool returns the value for key as a flag. Missing and non-bool keys are
// false, like an undefined variable in a template.
func (c *Context) Bool(key string) bool {
	b, _ := c.values[key].(bool)
	return b
}

// Text returns the textual form of key, or ok=false when it is undefined.
func (c *Context) Text(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Keys returns the keys in projection order.
func (c *Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Map returns a copy of the context for template execution.
func (c *Context) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Flags returns every boolean entry.
func (c *Context) Flags() map[string]bool {
	out := make(map[string]bool)
	for k, v := range c.values {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}

// MarshalJSON writes the keys in projection order.
func (c *Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// flag binds one enum value to the boolean key it projects to.
type flag[T comparable] struct {
	key   string
	value T
}

func emit[T comparable](c *Context, v T, table []flag[T]) {
	for _, f := range table {
		c.set(f.key, v == f.value)
	}
}

var (
	databaseFlags = []flag[project.Database]{
		{KeyUsePostgreSQL, project.DatabasePostgreSQL},
		{KeyUseMongoDB, project.DatabaseMongoDB},
		{KeyUseSQLite, project.DatabaseSQLite},
	}
	ormFlags = []flag[project.ORM]{
		{KeyUseSQLAlchemy, project.ORMSQLAlchemy},
		{KeyUseSQLModel, project.ORMSQLModel},
	}
	backgroundTaskFlags = []flag[project.BackgroundTasks]{
		{KeyUseCelery, project.BackgroundTasksCelery},
		{KeyUseTaskiq, project.BackgroundTasksTaskiq},
		{KeyUseARQ, project.BackgroundTasksARQ},
	}
	rateLimitStorageFlags = []flag[project.RateLimitStorage]{
		{KeyRateLimitStorageMemory, project.RateLimitStorageMemory},
		{KeyRateLimitStorageRedis, project.RateLimitStorageRedis},
	}
	adminEnvFlags = []flag[project.AdminEnvironments]{
		{KeyAdminEnvAll, project.AdminEnvAll},
		{KeyAdminEnvDevOnly, project.AdminEnvDevOnly},
		{KeyAdminEnvDevStaging, project.AdminEnvDevStaging},
		{KeyAdminEnvDisabled, project.AdminEnvDisabled},
	}
	aiFrameworkFlags = []flag[project.AIFramework]{
		{KeyUsePydanticAI, project.AIFrameworkPydanticAI},
		{KeyUseLangChain, project.AIFrameworkLangChain},
		{KeyUseLangGraph, project.AIFrameworkLangGraph},
		{KeyUseCrewAI, project.AIFrameworkCrewAI},
		{KeyUseDeepAgents, project.AIFrameworkDeepAgents},
	}
	llmProviderFlags = []flag[project.LLMProvider]{
		{KeyUseOpenAI, project.LLMProviderOpenAI},
		{KeyUseAnthropic, project.LLMProviderAnthropic},
		{KeyUseOpenRouter, project.LLMProviderOpenRouter},
	}
	websocketAuthFlags = []flag[project.WebSocketAuth]{
		{KeyWebSocketAuthJWT, project.WebSocketAuthJWT},
		{KeyWebSocketAuthAPIKey, project.WebSocketAuthAPIKey},
		{KeyWebSocketAuthNone, project.WebSocketAuthNone},
	}
	ciFlags = []flag[project.CI]{
		{KeyUseGitHubActions, project.CIGitHub},
		{KeyUseGitLabCI, project.CIGitLab},
	}
)

// Project expands a configuration into the template context. It is pure:
// the same configuration always yields the same context.
func Project(cfg project.Config) *Context {
	c := newContext()

	c.set(KeyProjectName, cfg.ProjectName)
	c.set(KeyProjectSlug, project.Slug(cfg.ProjectName))
	c.set(KeyProjectDescription, cfg.ProjectDescription)
	c.set(KeyAuthorName, cfg.AuthorName)
	c.set(KeyAuthorEmail, cfg.AuthorEmail)

	c.set(KeyDatabase, string(cfg.Database))
	emit(c, cfg.Database, databaseFlags)
	c.set(KeyUseDatabase, cfg.Database != project.DatabaseNone)
	c.set(KeyDBPoolSize, cfg.DBPoolSize)
	c.set(KeyDBMaxOverflow, cfg.DBMaxOverflow)
	c.set(KeyDBPoolTimeout, cfg.DBPoolTimeout)

	c.set(KeyORMType, string(cfg.ORMType))
	emit(c, cfg.ORMType, ormFlags)

	c.set(KeyAuth, string(cfg.Auth))
	c.set(KeyUseJWT, cfg.Auth.UsesJWT())
	c.set(KeyUseAPIKey, cfg.Auth.UsesAPIKey())
	c.set(KeyUseAuth, cfg.Auth != project.AuthNone)

	c.set(KeyOAuthProvider, string(cfg.OAuthProvider))
	c.set(KeyEnableOAuth, cfg.OAuthProvider != project.OAuthNone)
	c.set(KeyEnableOAuthGoogle, cfg.OAuthProvider == project.OAuthGoogle)

	c.set(KeyEnableSessionManagement, cfg.EnableSessionManagement)

	c.set(KeyEnableLogfire, cfg.EnableLogfire)
	c.set(KeyLogfireFastAPI, cfg.LogfireFeatures.FastAPI)
	c.set(KeyLogfireDatabase, cfg.LogfireFeatures.Database)
	c.set(KeyLogfireRedis, cfg.LogfireFeatures.Redis)
	c.set(KeyLogfireCelery, cfg.LogfireFeatures.Celery)
	c.set(KeyLogfireHTTPX, cfg.LogfireFeatures.HTTPX)

	c.set(KeyBackgroundTasks, string(cfg.BackgroundTasks))
	emit(c, cfg.BackgroundTasks, backgroundTaskFlags)

	c.set(KeyEnableRedis, cfg.EnableRedis)
	c.set(KeyEnableCaching, cfg.EnableCaching)
	c.set(KeyEnableRateLimiting, cfg.EnableRateLimiting)
	c.set(KeyRateLimitRequests, cfg.RateLimitRequests)
	c.set(KeyRateLimitPeriod, cfg.RateLimitPeriod)
	c.set(KeyRateLimitStorage, string(cfg.RateLimitStorage))
	emit(c, cfg.RateLimitStorage, rateLimitStorageFlags)
	c.set(KeyEnablePagination, cfg.EnablePagination)
	c.set(KeyEnableSentry, cfg.EnableSentry)
	c.set(KeyEnablePrometheus, cfg.EnablePrometheus)
	c.set(KeyEnableAdminPanel, cfg.EnableAdminPanel)
	c.set(KeyAdminEnvironments, string(cfg.AdminEnvironments))
	emit(c, cfg.AdminEnvironments, adminEnvFlags)
	c.set(KeyAdminRequireAuth, cfg.AdminRequireAuth)
	c.set(KeyEnableWebSockets, cfg.EnableWebSockets)
	c.set(KeyEnableFileStorage, cfg.EnableFileStorage)
	c.set(KeyEnableAIAgent, cfg.EnableAIAgent)
	c.set(KeyAIFramework, string(cfg.AIFramework))
	emit(c, cfg.AIFramework, aiFrameworkFlags)
	c.set(KeyLLMProvider, string(cfg.LLMProvider))
	emit(c, cfg.LLMProvider, llmProviderFlags)
	c.set(KeyEnableConversationPersistence, cfg.EnableConversationPersistence)
	c.set(KeyEnableWebhooks, cfg.EnableWebhooks)
	c.set(KeyWebSocketAuth, string(cfg.WebSocketAuth))
	emit(c, cfg.WebSocketAuth, websocketAuthFlags)
	c.set(KeyEnableCORS, cfg.EnableCORS)
	c.set(KeyEnableORJSON, cfg.EnableORJSON)

	c.set(KeyEnableI18n, cfg.EnableI18n)
	c.set(KeyFrontend, string(cfg.Frontend))
	c.set(KeyUseFrontend, cfg.Frontend != project.FrontendNone)
	c.set(KeyUseNextJS, cfg.Frontend == project.FrontendNextJS)
	c.set(KeyFrontendPort, cfg.FrontendPort)

	c.set(KeyIncludeExampleCRUD, cfg.IncludeExampleCRUD)

	c.set(KeyEnablePytest, cfg.EnablePytest)
	c.set(KeyEnablePrecommit, cfg.EnablePrecommit)
	c.set(KeyEnableMakefile, cfg.EnableMakefile)
	c.set(KeyEnableDocker, cfg.EnableDocker)

	c.set(KeyReverseProxy, string(cfg.ReverseProxy))
	c.set(KeyIncludeTraefikService, cfg.ReverseProxy == project.ReverseProxyTraefikIncluded)
	c.set(KeyIncludeTraefikLabels, cfg.ReverseProxy.IsTraefik())
	c.set(KeyUseTraefik, cfg.ReverseProxy.IsTraefik())
	c.set(KeyIncludeNginxService, cfg.ReverseProxy == project.ReverseProxyNginxIncluded)
	c.set(KeyIncludeNginxConfig, cfg.ReverseProxy.IsNginx())
	c.set(KeyUseNginx, cfg.ReverseProxy.IsNginx())

	c.set(KeyCIType, string(cfg.CIType))
	emit(c, cfg.CIType, ciFlags)
	c.set(KeyEnableKubernetes, cfg.EnableKubernetes)
	c.set(KeyGenerateEnv, cfg.GenerateEnv)

	c.set(KeyPythonVersion, cfg.PythonVersion)

	c.set(KeyBackendPort, cfg.BackendPort)

	return c
}
