package project

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var projectNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const (
	minPort = 1024
	maxPort = 65535
)

// FieldError is a validation failure scoped to one configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in one pass. A failing
// field never hides errors on other fields.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// For returns the error reported for field, or nil.
func (v ValidationErrors) For(field string) *FieldError {
	for _, e := range v {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// Validate checks the field-level constraints. Cross-field consistency is
// not checked here; Resolve repairs it instead.
func (c Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if err := ValidateProjectName(c.ProjectName); err != nil {
		add("project_name", "%s", err.Error())
	}
	if err := ValidateEmail(c.AuthorEmail); err != nil {
		add("author_email", "%s", err.Error())
	}
	if err := ValidatePort(c.BackendPort); err != nil {
		add("backend_port", "%s", err.Error())
	}
	if err := ValidatePort(c.FrontendPort); err != nil {
		add("frontend_port", "%s", err.Error())
	}

	positive := []struct {
		field string
		value int
	}{
		{"db_pool_size", c.DBPoolSize},
		{"db_pool_timeout", c.DBPoolTimeout},
		{"rate_limit_requests", c.RateLimitRequests},
		{"rate_limit_period", c.RateLimitPeriod},
	}
	for _, p := range positive {
		if p.value <= 0 {
			add(p.field, "must be a positive integer")
		}
	}
	if c.DBMaxOverflow < 0 {
		add("db_max_overflow", "must not be negative")
	}

	for _, e := range enumChecks(c) {
		if !e.ok {
			add(e.field, "invalid value %q", e.value)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type enumCheck struct {
	field string
	ok    bool
	value string
}

func enumChecks(c Config) []enumCheck {
	return []enumCheck{
		{"database", oneOf(c.Database, DatabaseValues), string(c.Database)},
		{"orm_type", oneOf(c.ORMType, ORMValues), string(c.ORMType)},
		{"auth", oneOf(c.Auth, AuthValues), string(c.Auth)},
		{"oauth_provider", oneOf(c.OAuthProvider, OAuthProviderValues), string(c.OAuthProvider)},
		{"background_tasks", oneOf(c.BackgroundTasks, BackgroundTasksValues), string(c.BackgroundTasks)},
		{"rate_limit_storage", oneOf(c.RateLimitStorage, RateLimitStorageValues), string(c.RateLimitStorage)},
		{"admin_environments", oneOf(c.AdminEnvironments, AdminEnvironmentsValues), string(c.AdminEnvironments)},
		{"ai_framework", oneOf(c.AIFramework, AIFrameworkValues), string(c.AIFramework)},
		{"llm_provider", oneOf(c.LLMProvider, LLMProviderValues), string(c.LLMProvider)},
		{"websocket_auth", oneOf(c.WebSocketAuth, WebSocketAuthValues), string(c.WebSocketAuth)},
		{"reverse_proxy", oneOf(c.ReverseProxy, ReverseProxyValues), string(c.ReverseProxy)},
		{"ci_type", oneOf(c.CIType, CIValues), string(c.CIType)},
		{"frontend", oneOf(c.Frontend, FrontendValues), string(c.Frontend)},
		{"python_version", oneOf(c.PythonVersion, PythonVersionValues), c.PythonVersion},
	}
}

// invalidEnum returns the error for field when it is an enum holding a
// value outside its closed set.
func invalidEnum(c Config, field string) *FieldError {
	for _, e := range enumChecks(c) {
		if e.field == field && !e.ok {
			return &FieldError{Field: field, Message: fmt.Sprintf("invalid value %q", e.value)}
		}
	}
	return nil
}

// ValidateProjectName checks the project identifier format.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if !projectNameRe.MatchString(name) {
		return fmt.Errorf("project name must start with a lowercase letter and contain only lowercase letters, digits, and underscores")
	}
	return nil
}

// ValidateEmail accepts a bare address only, no display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}

// ValidatePort checks the unprivileged TCP port range.
func ValidatePort(port int) error {
	if port < minPort || port > maxPort {
		return fmt.Errorf("port must be %d-%d", minPort, maxPort)
	}
	return nil
}

// NormalizeName folds free-form input into a valid project name candidate:
// lowercased, whitespace and dash runs become underscores, anything else
// outside [a-z0-9_] is dropped.
func NormalizeName(raw string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			sep = true
			continue
		case sep:
			b.WriteByte('_')
			sep = false
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if sep {
		b.WriteByte('_')
	}
	return b.String()
}

// Slug is the archive root and package directory name: dashes folded to
// underscores.
func Slug(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
