package ui

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/company/fastapi-configurator/internal/project"
)

// Wizard asks for a configuration step by step. Each group of fields is a
// page; pages whose fields are irrelevant under the current answers are
// skipped using the visibility predicates.
type Wizard struct {
	cfg project.Config

	backendPort  string
	frontendPort string
	poolSize     string
	maxOverflow  string
	poolTimeout  string
	rateRequests string
	ratePeriod   string
	logfireParts []string
	accessible   bool
}

const (
	logfireFastAPI  = "fastapi"
	logfireDatabase = "database"
	logfireRedis    = "redis"
	logfireCelery   = "celery"
	logfireHTTPX    = "httpx"
)

// NewWizard starts the wizard from start, usually a session snapshot.
func NewWizard(start project.Config) *Wizard {
	w := &Wizard{cfg: start}
	w.backendPort = strconv.Itoa(start.BackendPort)
	w.frontendPort = strconv.Itoa(start.FrontendPort)
	w.poolSize = strconv.Itoa(start.DBPoolSize)
	w.maxOverflow = strconv.Itoa(start.DBMaxOverflow)
	w.poolTimeout = strconv.Itoa(start.DBPoolTimeout)
	w.rateRequests = strconv.Itoa(start.RateLimitRequests)
	w.ratePeriod = strconv.Itoa(start.RateLimitPeriod)

	lf := start.LogfireFeatures
	for _, f := range []struct {
		on  bool
		key string
	}{
		{lf.FastAPI, logfireFastAPI},
		{lf.Database, logfireDatabase},
		{lf.Redis, logfireRedis},
		{lf.Celery, logfireCelery},
		{lf.HTTPX, logfireHTTPX},
	} {
		if f.on {
			w.logfireParts = append(w.logfireParts, f.key)
		}
	}
	return w
}

// SetAccessible switches huh to its screen-reader friendly mode.
func (w *Wizard) SetAccessible(v bool) {
	w.accessible = v
}

// Run shows the form and returns the answers. The result is not resolved;
// callers pass it through a project.Session.
func (w *Wizard) Run(ctx context.Context) (project.Config, error) {
	if err := w.Form().RunWithContext(ctx); err != nil {
		return project.Config{}, err
	}
	return w.Config()
}

// Config converts the current answers back into a configuration.
func (w *Wizard) Config() (project.Config, error) {
	cfg := w.cfg
	cfg.ProjectName = project.NormalizeName(cfg.ProjectName)

	ints := []struct {
		field string
		raw   string
		dst   *int
	}{
		{"backend_port", w.backendPort, &cfg.BackendPort},
		{"frontend_port", w.frontendPort, &cfg.FrontendPort},
		{"db_pool_size", w.poolSize, &cfg.DBPoolSize},
		{"db_max_overflow", w.maxOverflow, &cfg.DBMaxOverflow},
		{"db_pool_timeout", w.poolTimeout, &cfg.DBPoolTimeout},
		{"rate_limit_requests", w.rateRequests, &cfg.RateLimitRequests},
		{"rate_limit_period", w.ratePeriod, &cfg.RateLimitPeriod},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(f.raw)
		if err != nil {
			return project.Config{}, &project.FieldError{Field: f.field, Message: "must be a whole number"}
		}
		*f.dst = n
	}

	cfg.LogfireFeatures = project.LogfireFeatures{
		FastAPI:  slices.Contains(w.logfireParts, logfireFastAPI),
		Database: slices.Contains(w.logfireParts, logfireDatabase),
		Redis:    slices.Contains(w.logfireParts, logfireRedis),
		Celery:   slices.Contains(w.logfireParts, logfireCelery),
		HTTPX:    slices.Contains(w.logfireParts, logfireHTTPX),
	}
	return cfg, nil
}

// Form builds the huh form bound to the wizard's answers.
func (w *Wizard) Form() *huh.Form {
	c := &w.cfg
	visible := func(pred func(project.Config) bool) func() bool {
		return func() bool { return !pred(*c) }
	}

	groups := []*huh.Group{
		// Project
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&c.ProjectName).
				DescriptionFunc(func() string {
					return "Will be saved as: " + project.NormalizeName(c.ProjectName)
				}, &c.ProjectName).
				Validate(func(s string) error {
					return project.ValidateProjectName(project.NormalizeName(s))
				}),
			huh.NewInput().Title("Description").Value(&c.ProjectDescription),
			huh.NewInput().Title("Author name").Value(&c.AuthorName),
			huh.NewInput().Title("Author email").Value(&c.AuthorEmail).Validate(project.ValidateEmail),
			huh.NewSelect[string]().
				Title("Python version").
				Options(huh.NewOptions(project.PythonVersionValues...)...).
				Value(&c.PythonVersion),
		).Title("Project"),

		// Database
		huh.NewGroup(
			huh.NewSelect[project.Database]().
				Title("Database").
				Options(options(project.DatabaseValues, project.DatabaseLabels)...).
				Value(&c.Database),
		).Title("Database"),
		huh.NewGroup(
			huh.NewSelect[project.ORM]().
				Title("ORM").
				Options(options(project.ORMValues, project.ORMLabels)...).
				Value(&c.ORMType),
		).WithHideFunc(visible(project.ShowORMType)),
		huh.NewGroup(
			intInput("Pool size", &w.poolSize, positive),
			intInput("Max overflow", &w.maxOverflow, nonNegative),
			intInput("Pool timeout (seconds)", &w.poolTimeout, positive),
		).Title("Connection pool").WithHideFunc(func() bool { return c.Database == project.DatabaseNone }),

		// Auth
		huh.NewGroup(
			huh.NewSelect[project.Auth]().
				Title("Authentication").
				Options(options(project.AuthValues, project.AuthLabels)...).
				Value(&c.Auth),
		).Title("Authentication"),
		huh.NewGroup(
			huh.NewSelect[project.OAuthProvider]().
				Title("OAuth provider").
				Options(options(project.OAuthProviderValues, project.OAuthProviderLabels)...).
				Value(&c.OAuthProvider),
		).WithHideFunc(visible(project.ShowOAuth)),
		huh.NewGroup(
			toggle("Session management", "Track and revoke user sessions", &c.EnableSessionManagement),
		).WithHideFunc(visible(project.ShowSessionManagement)),

		// AI agent
		huh.NewGroup(
			toggle("Enable AI agent", "Chat agent with tool calling", &c.EnableAIAgent),
		).Title("AI agent"),
		huh.NewGroup(
			huh.NewSelect[project.AIFramework]().
				Title("Framework").
				Options(options(project.AIFrameworkValues, project.AIFrameworkLabels)...).
				Value(&c.AIFramework),
			huh.NewSelect[project.LLMProvider]().
				Title("LLM provider").
				OptionsFunc(func() []huh.Option[project.LLMProvider] {
					return options(project.AvailableLLMProviders(*c), project.LLMProviderLabels)
				}, &c.AIFramework).
				Value(&c.LLMProvider),
		).WithHideFunc(visible(project.ShowAIOptions)),
		huh.NewGroup(
			toggle("Conversation persistence", "Store chat history in the database", &c.EnableConversationPersistence),
		).WithHideFunc(visible(project.ShowConversationPersistence)),

		// Infrastructure
		huh.NewGroup(
			huh.NewSelect[project.BackgroundTasks]().
				Title("Background tasks").
				Options(options(project.BackgroundTasksValues, project.BackgroundTasksLabels)...).
				Value(&c.BackgroundTasks),
			toggle("Redis", "In-memory data store", &c.EnableRedis),
			toggle("Caching", "Response caching (requires Redis)", &c.EnableCaching),
			toggle("Rate limiting", "API rate limiting", &c.EnableRateLimiting),
			toggle("Pagination", "API response pagination", &c.EnablePagination),
		).Title("Infrastructure"),
		huh.NewGroup(
			intInput("Requests", &w.rateRequests, positive),
			intInput("Period (seconds)", &w.ratePeriod, positive),
			huh.NewSelect[project.RateLimitStorage]().
				Title("Storage").
				Options(options(project.RateLimitStorageValues, project.RateLimitStorageLabels)...).
				Value(&c.RateLimitStorage),
		).Title("Rate limit").WithHideFunc(visible(project.ShowRateLimitConfig)),
		huh.NewGroup(
			toggle("Logfire", "Pydantic Logfire integration", &c.EnableLogfire),
			toggle("Sentry", "Error tracking", &c.EnableSentry),
			toggle("Prometheus", "Metrics endpoint", &c.EnablePrometheus),
		).Title("Observability"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Logfire instrumentation").
				Options(
					huh.NewOption("FastAPI", logfireFastAPI),
					huh.NewOption("Database", logfireDatabase),
					huh.NewOption("Redis", logfireRedis),
					huh.NewOption("Celery", logfireCelery),
					huh.NewOption("HTTPX", logfireHTTPX),
				).
				Value(&w.logfireParts),
		).WithHideFunc(visible(project.ShowLogfireFeatures)),

		// Integrations
		huh.NewGroup(
			toggle("WebSockets", "Real-time communication", &c.EnableWebSockets),
			toggle("File storage", "S3/MinIO file uploads", &c.EnableFileStorage),
			toggle("Webhooks", "Event-driven webhook system", &c.EnableWebhooks),
			toggle("CORS", "Cross-origin resource sharing", &c.EnableCORS),
			toggle("orjson", "Fast JSON serialization", &c.EnableORJSON),
			toggle("Example CRUD", "Sample CRUD endpoints", &c.IncludeExampleCRUD),
		).Title("Integrations"),
		huh.NewGroup(
			huh.NewSelect[project.WebSocketAuth]().
				Title("WebSocket authentication").
				Options(options(project.WebSocketAuthValues, project.WebSocketAuthLabels)...).
				Value(&c.WebSocketAuth),
		).WithHideFunc(visible(project.ShowWebSocketAuth)),
		huh.NewGroup(
			toggle("Admin panel", "SQLAdmin dashboard", &c.EnableAdminPanel),
		).WithHideFunc(visible(project.ShowAdminPanel)),
		huh.NewGroup(
			huh.NewSelect[project.AdminEnvironments]().
				Title("Admin available in").
				Options(options(project.AdminEnvironmentsValues, project.AdminEnvironmentsLabels)...).
				Value(&c.AdminEnvironments),
			toggle("Require authentication", "Superuser login for the admin", &c.AdminRequireAuth),
		).WithHideFunc(func() bool { return !project.ShowAdminPanel(*c) || !project.ShowAdminOptions(*c) }),

		// Dev tools
		huh.NewGroup(
			toggle("Docker", "Dockerfile and docker-compose", &c.EnableDocker),
			toggle("Kubernetes", "K8s deployment manifests", &c.EnableKubernetes),
			toggle("Pytest", "Test framework setup", &c.EnablePytest),
			toggle("Pre-commit", "Git hooks for linting", &c.EnablePrecommit),
			toggle("Makefile", "Common command shortcuts", &c.EnableMakefile),
			toggle("Generate .env", "Environment variables file", &c.GenerateEnv),
			huh.NewSelect[project.CI]().
				Title("CI/CD").
				Options(options(project.CIValues, project.CILabels)...).
				Value(&c.CIType),
			intInput("Backend port", &w.backendPort, project.ValidatePort),
		).Title("Dev tools"),
		huh.NewGroup(
			huh.NewSelect[project.ReverseProxy]().
				Title("Reverse proxy").
				Options(options(project.ReverseProxyValues, project.ReverseProxyLabels)...).
				Value(&c.ReverseProxy),
		).WithHideFunc(visible(project.ShowReverseProxy)),

		// Frontend
		huh.NewGroup(
			huh.NewSelect[project.Frontend]().
				Title("Frontend").
				Options(options(project.FrontendValues, project.FrontendLabels)...).
				Value(&c.Frontend),
		).Title("Frontend"),
		huh.NewGroup(
			toggle("Internationalization (i18n)", "Multi-language support", &c.EnableI18n),
			intInput("Frontend port", &w.frontendPort, project.ValidatePort),
		).WithHideFunc(visible(project.ShowFrontendFeatures)),
	}

	return huh.NewForm(groups...).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(w.accessible)
}

func options[T comparable](values []T, labels map[T]string) []huh.Option[T] {
	opts := make([]huh.Option[T], 0, len(values))
	for _, v := range values {
		label, ok := labels[v]
		if !ok {
			label = fmt.Sprint(v)
		}
		opts = append(opts, huh.NewOption(label, v))
	}
	return opts
}

func toggle(title, desc string, v *bool) *huh.Confirm {
	return huh.NewConfirm().
		Title(title).
		Description(desc).
		Affirmative("Yes").
		Negative("No").
		Value(v)
}

func intInput(title string, v *string, check func(int) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(v).
		Validate(func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("must be a whole number")
			}
			return check(n)
		})
}

func positive(n int) error {
	if n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
