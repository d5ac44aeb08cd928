package cookiecutter

// Context keys read by the template corpus and by the exclusion rules. The
// corpus and this list change together.
const (
	KeyProjectName        = "project_name"
	KeyProjectSlug        = "project_slug"
	KeyProjectDescription = "project_description"
	KeyAuthorName         = "author_name"
	KeyAuthorEmail        = "author_email"

	KeyDatabase      = "database"
	KeyUsePostgreSQL = "use_postgresql"
	KeyUseMongoDB    = "use_mongodb"
	KeyUseSQLite     = "use_sqlite"
	KeyUseDatabase   = "use_database"
	KeyDBPoolSize    = "db_pool_size"
	KeyDBMaxOverflow = "db_max_overflow"
	KeyDBPoolTimeout = "db_pool_timeout"

	KeyORMType       = "orm_type"
	KeyUseSQLAlchemy = "use_sqlalchemy"
	KeyUseSQLModel   = "use_sqlmodel"

	KeyAuth              = "auth"
	KeyUseJWT            = "use_jwt"
	KeyUseAPIKey         = "use_api_key"
	KeyUseAuth           = "use_auth"
	KeyOAuthProvider     = "oauth_provider"
	KeyEnableOAuth       = "enable_oauth"
	KeyEnableOAuthGoogle = "enable_oauth_google"

	KeyEnableSessionManagement = "enable_session_management"

	KeyEnableLogfire   = "enable_logfire"
	KeyLogfireFastAPI  = "logfire_fastapi"
	KeyLogfireDatabase = "logfire_database"
	KeyLogfireRedis    = "logfire_redis"
	KeyLogfireCelery   = "logfire_celery"
	KeyLogfireHTTPX    = "logfire_httpx"

	KeyBackgroundTasks = "background_tasks"
	KeyUseCelery       = "use_celery"
	KeyUseTaskiq       = "use_taskiq"
	KeyUseARQ          = "use_arq"

	KeyEnableRedis            = "enable_redis"
	KeyEnableCaching          = "enable_caching"
	KeyEnableRateLimiting     = "enable_rate_limiting"
	KeyRateLimitRequests      = "rate_limit_requests"
	KeyRateLimitPeriod        = "rate_limit_period"
	KeyRateLimitStorage       = "rate_limit_storage"
	KeyRateLimitStorageMemory = "rate_limit_storage_memory"
	KeyRateLimitStorageRedis  = "rate_limit_storage_redis"
	KeyEnablePagination       = "enable_pagination"
	KeyEnableSentry           = "enable_sentry"
	KeyEnablePrometheus       = "enable_prometheus"
	KeyEnableAdminPanel       = "enable_admin_panel"
	KeyAdminEnvironments      = "admin_environments"
	KeyAdminEnvAll            = "admin_env_all"
	KeyAdminEnvDevOnly        = "admin_env_dev_only"
	KeyAdminEnvDevStaging     = "admin_env_dev_staging"
	KeyAdminEnvDisabled       = "admin_env_disabled"
	KeyAdminRequireAuth       = "admin_require_auth"
	KeyEnableWebSockets       = "enable_websockets"
	KeyEnableFileStorage      = "enable_file_storage"
	KeyEnableAIAgent          = "enable_ai_agent"
	KeyAIFramework            = "ai_framework"
	KeyUsePydanticAI          = "use_pydantic_ai"
	KeyUseLangChain           = "use_langchain"
	KeyUseLangGraph           = "use_langgraph"
	KeyUseCrewAI              = "use_crewai"
	KeyUseDeepAgents          = "use_deepagents"
	KeyLLMProvider            = "llm_provider"
	KeyUseOpenAI              = "use_openai"
	KeyUseAnthropic           = "use_anthropic"
	KeyUseOpenRouter          = "use_openrouter"

	KeyEnableConversationPersistence = "enable_conversation_persistence"
	KeyEnableWebhooks                = "enable_webhooks"
	KeyWebSocketAuth                 = "websocket_auth"
	KeyWebSocketAuthJWT              = "websocket_auth_jwt"
	KeyWebSocketAuthAPIKey           = "websocket_auth_api_key"
	KeyWebSocketAuthNone             = "websocket_auth_none"
	KeyEnableCORS                    = "enable_cors"
	KeyEnableORJSON                  = "enable_orjson"

	KeyEnableI18n   = "enable_i18n"
	KeyFrontend     = "frontend"
	KeyUseFrontend  = "use_frontend"
	KeyUseNextJS    = "use_nextjs"
	KeyFrontendPort = "frontend_port"

	KeyIncludeExampleCRUD = "include_example_crud"

	KeyEnablePytest    = "enable_pytest"
	KeyEnablePrecommit = "enable_precommit"
	KeyEnableMakefile  = "enable_makefile"
	KeyEnableDocker    = "enable_docker"

	KeyReverseProxy          = "reverse_proxy"
	KeyIncludeTraefikService = "include_traefik_service"
	KeyIncludeTraefikLabels  = "include_traefik_labels"
	KeyUseTraefik            = "use_traefik"
	KeyIncludeNginxService   = "include_nginx_service"
	KeyIncludeNginxConfig    = "include_nginx_config"
	KeyUseNginx              = "use_nginx"

	KeyCIType           = "ci_type"
	KeyUseGitHubActions = "use_github_actions"
	KeyUseGitLabCI      = "use_gitlab_ci"
	KeyEnableKubernetes = "enable_kubernetes"
	KeyGenerateEnv      = "generate_env"

	KeyPythonVersion = "python_version"

	KeyBackendPort = "backend_port"
)
