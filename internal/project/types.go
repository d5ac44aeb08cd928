// Package project holds the configuration model for one project to generate:
// enums, defaults, presets, field validation, visibility predicates and the
// dependency auto-resolution pass.
package project

import "slices"

// Database selects the primary datastore.
type Database string

const (
	DatabasePostgreSQL Database = "postgresql"
	DatabaseMongoDB    Database = "mongodb"
	DatabaseSQLite     Database = "sqlite"
	DatabaseNone       Database = "none"
)

// Auth selects the authentication scheme.
type Auth string

const (
	AuthJWT    Auth = "jwt"
	AuthAPIKey Auth = "api_key"
	AuthBoth   Auth = "both"
	AuthNone   Auth = "none"
)

// BackgroundTasks selects the task queue backend.
type BackgroundTasks string

const (
	BackgroundTasksNone   BackgroundTasks = "none"
	BackgroundTasksCelery BackgroundTasks = "celery"
	BackgroundTasksTaskiq BackgroundTasks = "taskiq"
	BackgroundTasksARQ    BackgroundTasks = "arq"
)

// CI selects the CI pipeline provider.
type CI string

const (
	CIGitHub CI = "github"
	CIGitLab CI = "gitlab"
	CINone   CI = "none"
)

// Frontend selects the frontend framework.
type Frontend string

const (
	FrontendNone   Frontend = "none"
	FrontendNextJS Frontend = "nextjs"
)

// WebSocketAuth selects how the agent WebSocket route authenticates.
type WebSocketAuth string

const (
	WebSocketAuthNone   WebSocketAuth = "none"
	WebSocketAuthJWT    WebSocketAuth = "jwt"
	WebSocketAuthAPIKey WebSocketAuth = "api_key"
)

// AdminEnvironments selects where the admin panel is mounted.
type AdminEnvironments string

const (
	AdminEnvAll        AdminEnvironments = "all"
	AdminEnvDevOnly    AdminEnvironments = "dev_only"
	AdminEnvDevStaging AdminEnvironments = "dev_staging"
	AdminEnvDisabled   AdminEnvironments = "disabled"
)

// OAuthProvider selects the social login provider.
type OAuthProvider string

const (
	OAuthNone   OAuthProvider = "none"
	OAuthGoogle OAuthProvider = "google"
)

// AIFramework selects the agent framework.
type AIFramework string

const (
	AIFrameworkPydanticAI AIFramework = "pydantic_ai"
	AIFrameworkLangChain  AIFramework = "langchain"
	AIFrameworkLangGraph  AIFramework = "langgraph"
	AIFrameworkCrewAI     AIFramework = "crewai"
	AIFrameworkDeepAgents AIFramework = "deepagents"
)

// LLMProvider selects the model provider.
type LLMProvider string

const (
	LLMProviderOpenAI     LLMProvider = "openai"
	LLMProviderAnthropic  LLMProvider = "anthropic"
	LLMProviderOpenRouter LLMProvider = "openrouter"
)

// RateLimitStorage selects where rate-limit counters live.
type RateLimitStorage string

const (
	RateLimitStorageMemory RateLimitStorage = "memory"
	RateLimitStorageRedis  RateLimitStorage = "redis"
)

// ReverseProxy selects the reverse proxy setup in front of the containers.
type ReverseProxy string

const (
	ReverseProxyTraefikIncluded ReverseProxy = "traefik_included"
	ReverseProxyTraefikExternal ReverseProxy = "traefik_external"
	ReverseProxyNginxIncluded   ReverseProxy = "nginx_included"
	ReverseProxyNginxExternal   ReverseProxy = "nginx_external"
	ReverseProxyNone            ReverseProxy = "none"
)

// ORM selects the SQL mapping layer.
type ORM string

const (
	ORMSQLAlchemy ORM = "sqlalchemy"
	ORMSQLModel   ORM = "sqlmodel"
)

// Value sets, in presentation order.
var (
	DatabaseValues          = []Database{DatabasePostgreSQL, DatabaseMongoDB, DatabaseSQLite, DatabaseNone}
	AuthValues              = []Auth{AuthJWT, AuthAPIKey, AuthBoth, AuthNone}
	BackgroundTasksValues   = []BackgroundTasks{BackgroundTasksNone, BackgroundTasksCelery, BackgroundTasksTaskiq, BackgroundTasksARQ}
	CIValues                = []CI{CIGitHub, CIGitLab, CINone}
	FrontendValues          = []Frontend{FrontendNone, FrontendNextJS}
	WebSocketAuthValues     = []WebSocketAuth{WebSocketAuthNone, WebSocketAuthJWT, WebSocketAuthAPIKey}
	AdminEnvironmentsValues = []AdminEnvironments{AdminEnvAll, AdminEnvDevOnly, AdminEnvDevStaging, AdminEnvDisabled}
	OAuthProviderValues     = []OAuthProvider{OAuthNone, OAuthGoogle}
	AIFrameworkValues       = []AIFramework{AIFrameworkPydanticAI, AIFrameworkLangChain, AIFrameworkLangGraph, AIFrameworkCrewAI, AIFrameworkDeepAgents}
	LLMProviderValues       = []LLMProvider{LLMProviderOpenAI, LLMProviderAnthropic, LLMProviderOpenRouter}
	RateLimitStorageValues  = []RateLimitStorage{RateLimitStorageMemory, RateLimitStorageRedis}
	ReverseProxyValues      = []ReverseProxy{ReverseProxyTraefikIncluded, ReverseProxyTraefikExternal, ReverseProxyNginxIncluded, ReverseProxyNginxExternal, ReverseProxyNone}
	ORMValues               = []ORM{ORMSQLAlchemy, ORMSQLModel}
	PythonVersionValues     = []string{"3.11", "3.12", "3.13"}
)

// Human-readable labels for the wizard and the review summary.
var (
	DatabaseLabels = map[Database]string{
		DatabasePostgreSQL: "PostgreSQL",
		DatabaseMongoDB:    "MongoDB",
		DatabaseSQLite:     "SQLite",
		DatabaseNone:       "None",
	}
	AuthLabels = map[Auth]string{
		AuthJWT:    "JWT",
		AuthAPIKey: "API Key",
		AuthBoth:   "JWT + API Key",
		AuthNone:   "None",
	}
	BackgroundTasksLabels = map[BackgroundTasks]string{
		BackgroundTasksNone:   "None",
		BackgroundTasksCelery: "Celery",
		BackgroundTasksTaskiq: "TaskIQ",
		BackgroundTasksARQ:    "ARQ",
	}
	CILabels = map[CI]string{
		CIGitHub: "GitHub Actions",
		CIGitLab: "GitLab CI",
		CINone:   "None",
	}
	FrontendLabels = map[Frontend]string{
		FrontendNone:   "None",
		FrontendNextJS: "Next.js",
	}
	WebSocketAuthLabels = map[WebSocketAuth]string{
		WebSocketAuthNone:   "None",
		WebSocketAuthJWT:    "JWT",
		WebSocketAuthAPIKey: "API Key",
	}
	AdminEnvironmentsLabels = map[AdminEnvironments]string{
		AdminEnvAll:        "All environments",
		AdminEnvDevOnly:    "Development only",
		AdminEnvDevStaging: "Development + Staging",
		AdminEnvDisabled:   "Disabled",
	}
	OAuthProviderLabels = map[OAuthProvider]string{
		OAuthNone:   "None",
		OAuthGoogle: "Google",
	}
	AIFrameworkLabels = map[AIFramework]string{
		AIFrameworkPydanticAI: "Pydantic AI",
		AIFrameworkLangChain:  "LangChain",
		AIFrameworkLangGraph:  "LangGraph",
		AIFrameworkCrewAI:     "CrewAI",
		AIFrameworkDeepAgents: "DeepAgents",
	}
	LLMProviderLabels = map[LLMProvider]string{
		LLMProviderOpenAI:     "OpenAI",
		LLMProviderAnthropic:  "Anthropic",
		LLMProviderOpenRouter: "OpenRouter",
	}
	RateLimitStorageLabels = map[RateLimitStorage]string{
		RateLimitStorageMemory: "In-memory",
		RateLimitStorageRedis:  "Redis",
	}
	ReverseProxyLabels = map[ReverseProxy]string{
		ReverseProxyTraefikIncluded: "Traefik (included in Docker Compose)",
		ReverseProxyTraefikExternal: "Traefik (external, labels only)",
		ReverseProxyNginxIncluded:   "Nginx (included in Docker Compose)",
		ReverseProxyNginxExternal:   "Nginx (external, config template only)",
		ReverseProxyNone:            "None",
	}
	ORMLabels = map[ORM]string{
		ORMSQLAlchemy: "SQLAlchemy",
		ORMSQLModel:   "SQLModel",
	}
)

// LogfireFeatures are the per-integration Logfire instrumentation toggles.
type LogfireFeatures struct {
	FastAPI  bool `yaml:"fastapi" json:"fastapi"`
	Database bool `yaml:"database" json:"database"`
	Redis    bool `yaml:"redis" json:"redis"`
	Celery   bool `yaml:"celery" json:"celery"`
	HTTPX    bool `yaml:"httpx" json:"httpx"`
}

// Config is every user-selectable option for one generated project.
type Config struct {
	// Basic info
	ProjectName        string `yaml:"project_name" json:"project_name"`
	ProjectDescription string `yaml:"project_description" json:"project_description"`
	AuthorName         string `yaml:"author_name" json:"author_name"`
	AuthorEmail        string `yaml:"author_email" json:"author_email"`

	// Database
	Database      Database `yaml:"database" json:"database"`
	ORMType       ORM      `yaml:"orm_type" json:"orm_type"`
	DBPoolSize    int      `yaml:"db_pool_size" json:"db_pool_size"`
	DBMaxOverflow int      `yaml:"db_max_overflow" json:"db_max_overflow"`
	DBPoolTimeout int      `yaml:"db_pool_timeout" json:"db_pool_timeout"`

	// Authentication
	Auth                    Auth          `yaml:"auth" json:"auth"`
	OAuthProvider           OAuthProvider `yaml:"oauth_provider" json:"oauth_provider"`
	EnableSessionManagement bool          `yaml:"enable_session_management" json:"enable_session_management"`

	// Observability
	EnableLogfire   bool            `yaml:"enable_logfire" json:"enable_logfire"`
	LogfireFeatures LogfireFeatures `yaml:"logfire_features" json:"logfire_features"`

	BackgroundTasks BackgroundTasks `yaml:"background_tasks" json:"background_tasks"`

	// Optional integrations
	EnableRedis                   bool              `yaml:"enable_redis" json:"enable_redis"`
	EnableCaching                 bool              `yaml:"enable_caching" json:"enable_caching"`
	EnableRateLimiting            bool              `yaml:"enable_rate_limiting" json:"enable_rate_limiting"`
	RateLimitRequests             int               `yaml:"rate_limit_requests" json:"rate_limit_requests"`
	RateLimitPeriod               int               `yaml:"rate_limit_period" json:"rate_limit_period"`
	RateLimitStorage              RateLimitStorage  `yaml:"rate_limit_storage" json:"rate_limit_storage"`
	EnablePagination              bool              `yaml:"enable_pagination" json:"enable_pagination"`
	EnableSentry                  bool              `yaml:"enable_sentry" json:"enable_sentry"`
	EnablePrometheus              bool              `yaml:"enable_prometheus" json:"enable_prometheus"`
	EnableAdminPanel              bool              `yaml:"enable_admin_panel" json:"enable_admin_panel"`
	AdminEnvironments             AdminEnvironments `yaml:"admin_environments" json:"admin_environments"`
	AdminRequireAuth              bool              `yaml:"admin_require_auth" json:"admin_require_auth"`
	EnableWebSockets              bool              `yaml:"enable_websockets" json:"enable_websockets"`
	EnableFileStorage             bool              `yaml:"enable_file_storage" json:"enable_file_storage"`
	EnableAIAgent                 bool              `yaml:"enable_ai_agent" json:"enable_ai_agent"`
	AIFramework                   AIFramework       `yaml:"ai_framework" json:"ai_framework"`
	LLMProvider                   LLMProvider       `yaml:"llm_provider" json:"llm_provider"`
	EnableConversationPersistence bool              `yaml:"enable_conversation_persistence" json:"enable_conversation_persistence"`
	EnableWebhooks                bool              `yaml:"enable_webhooks" json:"enable_webhooks"`
	WebSocketAuth                 WebSocketAuth     `yaml:"websocket_auth" json:"websocket_auth"`
	EnableCORS                    bool              `yaml:"enable_cors" json:"enable_cors"`
	EnableORJSON                  bool              `yaml:"enable_orjson" json:"enable_orjson"`

	EnableI18n bool `yaml:"enable_i18n" json:"enable_i18n"`

	IncludeExampleCRUD bool `yaml:"include_example_crud" json:"include_example_crud"`

	// Dev tools
	EnablePytest     bool         `yaml:"enable_pytest" json:"enable_pytest"`
	EnablePrecommit  bool         `yaml:"enable_precommit" json:"enable_precommit"`
	EnableMakefile   bool         `yaml:"enable_makefile" json:"enable_makefile"`
	EnableDocker     bool         `yaml:"enable_docker" json:"enable_docker"`
	ReverseProxy     ReverseProxy `yaml:"reverse_proxy" json:"reverse_proxy"`
	CIType           CI           `yaml:"ci_type" json:"ci_type"`
	EnableKubernetes bool         `yaml:"enable_kubernetes" json:"enable_kubernetes"`
	GenerateEnv      bool         `yaml:"generate_env" json:"generate_env"`

	PythonVersion string `yaml:"python_version" json:"python_version"`

	Frontend     Frontend `yaml:"frontend" json:"frontend"`
	FrontendPort int      `yaml:"frontend_port" json:"frontend_port"`

	BackendPort int `yaml:"backend_port" json:"backend_port"`
}

// IsSQL reports whether the database is one of the SQL backends.
func (d Database) IsSQL() bool {
	return d == DatabasePostgreSQL || d == DatabaseSQLite
}

// UsesJWT reports whether JWT auth is active, alone or combined with API keys.
func (a Auth) UsesJWT() bool {
	return a == AuthJWT || a == AuthBoth
}

// UsesAPIKey reports whether API key auth is active.
func (a Auth) UsesAPIKey() bool {
	return a == AuthAPIKey || a == AuthBoth
}

// IsTraefik reports whether the proxy is one of the Traefik variants.
func (p ReverseProxy) IsTraefik() bool {
	return p == ReverseProxyTraefikIncluded || p == ReverseProxyTraefikExternal
}

// IsNginx reports whether the proxy is one of the Nginx variants.
func (p ReverseProxy) IsNginx() bool {
	return p == ReverseProxyNginxIncluded || p == ReverseProxyNginxExternal
}

// ShortLabel drops the parenthesised deployment detail, e.g. "Traefik".
func (p ReverseProxy) ShortLabel() string {
	label := ReverseProxyLabels[p]
	for i := 0; i+1 < len(label); i++ {
		if label[i] == ' ' && label[i+1] == '(' {
			return label[:i]
		}
	}
	return label
}

func oneOf[T comparable](v T, set []T) bool {
	return slices.Contains(set, v)
}
