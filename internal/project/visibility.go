package project

// Visibility predicates decide which field groups are currently relevant.
// A hidden field keeps a well-defined value but has no effect downstream.

// ShowORMType: ORM selector for SQL databases.
func ShowORMType(c Config) bool {
	return c.Database.IsSQL()
}

// ShowOAuth: OAuth provider selector when JWT auth is available.
func ShowOAuth(c Config) bool {
	return c.Auth.UsesJWT()
}

// ShowSessionManagement needs JWT auth and a database.
func ShowSessionManagement(c Config) bool {
	return c.Auth.UsesJWT() && c.Database != DatabaseNone
}

// ShowAIOptions: AI framework and LLM provider.
func ShowAIOptions(c Config) bool {
	return c.EnableAIAgent
}

// ShowOpenRouter reports whether OpenRouter is offered as a provider.
func ShowOpenRouter(c Config) bool {
	return c.AIFramework == AIFrameworkPydanticAI
}

// ShowWebSocketAuth needs both WebSockets and the AI agent.
func ShowWebSocketAuth(c Config) bool {
	return c.EnableWebSockets && c.EnableAIAgent
}

// ShowConversationPersistence needs the AI agent and a database.
func ShowConversationPersistence(c Config) bool {
	return c.EnableAIAgent && c.Database != DatabaseNone
}

// ShowAdminPanel: the admin integration only supports SQLAlchemy on SQL databases.
func ShowAdminPanel(c Config) bool {
	return c.Database.IsSQL() && c.ORMType == ORMSQLAlchemy
}

// ShowAdminOptions: environments and auth sub-options.
func ShowAdminOptions(c Config) bool {
	return c.EnableAdminPanel
}

// ShowReverseProxy needs Docker.
func ShowReverseProxy(c Config) bool {
	return c.EnableDocker
}

// ShowRateLimitConfig: requests, period and storage.
func ShowRateLimitConfig(c Config) bool {
	return c.EnableRateLimiting
}

// ShowLogfireFeatures: per-integration toggles.
func ShowLogfireFeatures(c Config) bool {
	return c.EnableLogfire
}

// ShowFrontendFeatures: i18n and frontend port.
func ShowFrontendFeatures(c Config) bool {
	return c.Frontend != FrontendNone
}

// AvailableLLMProviders filters the provider list by ShowOpenRouter.
func AvailableLLMProviders(c Config) []LLMProvider {
	out := make([]LLMProvider, 0, len(LLMProviderValues))
	for _, p := range LLMProviderValues {
		if p == LLMProviderOpenRouter && !ShowOpenRouter(c) {
			continue
		}
		out = append(out, p)
	}
	return out
}
