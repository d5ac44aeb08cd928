package project

// DefaultLogfireFeatures is the instrumentation set enabled by default.
func DefaultLogfireFeatures() LogfireFeatures {
	return LogfireFeatures{
		FastAPI:  true,
		Database: true,
	}
}

// Default returns the wizard's starting configuration.
//
// These are the configurator defaults. The upstream CLI keeps its own table
// (see internal/command), and the two intentionally disagree on some fields
// such as the frontend.
func Default() Config {
	return Config{
		ProjectName:        "my_project",
		ProjectDescription: "A FastAPI project",
		AuthorName:         "Your Name",
		AuthorEmail:        "your@email.com",

		Database:      DatabasePostgreSQL,
		ORMType:       ORMSQLAlchemy,
		DBPoolSize:    5,
		DBMaxOverflow: 10,
		DBPoolTimeout: 30,

		Auth:          AuthJWT,
		OAuthProvider: OAuthNone,

		EnableLogfire:   true,
		LogfireFeatures: DefaultLogfireFeatures(),

		BackgroundTasks: BackgroundTasksNone,

		RateLimitRequests: 100,
		RateLimitPeriod:   60,
		RateLimitStorage:  RateLimitStorageMemory,
		EnablePagination:  true,
		AdminEnvironments: AdminEnvDevStaging,
		AdminRequireAuth:  true,
		EnableAIAgent:     true,
		AIFramework:       AIFrameworkPydanticAI,
		LLMProvider:       LLMProviderOpenAI,
		WebSocketAuth:     WebSocketAuthNone,
		EnableCORS:        true,
		EnableORJSON:      true,

		IncludeExampleCRUD: true,

		EnablePytest:    true,
		EnablePrecommit: true,
		EnableMakefile:  true,
		EnableDocker:    true,
		ReverseProxy:    ReverseProxyTraefikIncluded,
		CIType:          CIGitHub,
		GenerateEnv:     true,

		PythonVersion: "3.12",

		Frontend:     FrontendNextJS,
		FrontendPort: 3000,

		BackendPort: 8000,
	}
}
