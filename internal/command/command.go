// Package command renders a configuration as the equivalent invocation of
// the upstream fastapi-fullstack CLI, listing only flags that differ from
// that CLI's own defaults.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/company/fastapi-configurator/internal/project"
)

// Program is the upstream generator invocation.
const Program = "fastapi-fullstack create"

// InstallHint is how users get the upstream CLI.
const InstallHint = "pip install fastapi-fullstack"

// CLIDefaults is the upstream CLI's default table. It differs from
// project.Default on purpose (the CLI creates no frontend unless asked and
// leaves every optional integration off), so it is kept separate.
type CLIDefaults struct {
	Database      project.Database
	ORMType       project.ORM
	Auth          project.Auth
	Frontend      project.Frontend
	BackendPort   int
	FrontendPort  int
	DBPoolSize    int
	DBMaxOverflow int
	AIFramework   project.AIFramework
	LLMProvider   project.LLMProvider
	Background    project.BackgroundTasks
	CI            project.CI
	PythonVersion string
}

// Defaults returns the upstream CLI defaults.
func Defaults() CLIDefaults {
	return CLIDefaults{
		Database:      project.DatabasePostgreSQL,
		ORMType:       project.ORMSQLAlchemy,
		Auth:          project.AuthJWT,
		Frontend:      project.FrontendNone,
		BackendPort:   8000,
		FrontendPort:  3000,
		DBPoolSize:    5,
		DBMaxOverflow: 10,
		AIFramework:   project.AIFrameworkPydanticAI,
		LLMProvider:   project.LLMProviderOpenAI,
		Background:    project.BackgroundTasksNone,
		CI:            project.CIGitHub,
		PythonVersion: "3.12",
	}
}

const lineBreak = " \\\n  "

var lineBreakRe = regexp.MustCompile(`\s*\\\n\s*`)

// switches are boolean flags the CLI leaves off unless passed.
var switches = []struct {
	flag string
	on   func(c project.Config) bool
}{
	{"--redis", func(c project.Config) bool { return c.EnableRedis }},
	{"--caching", func(c project.Config) bool { return c.EnableCaching }},
	{"--rate-limiting", func(c project.Config) bool { return c.EnableRateLimiting }},
	{"--admin-panel", func(c project.Config) bool { return c.EnableAdminPanel }},
	{"--websockets", func(c project.Config) bool { return c.EnableWebSockets }},
	{"--sentry", func(c project.Config) bool { return c.EnableSentry }},
	{"--prometheus", func(c project.Config) bool { return c.EnablePrometheus }},
	{"--file-storage", func(c project.Config) bool { return c.EnableFileStorage }},
	{"--webhooks", func(c project.Config) bool { return c.EnableWebhooks }},
	{"--kubernetes", func(c project.Config) bool { return c.EnableKubernetes }},
	{"--i18n", func(c project.Config) bool { return c.EnableI18n }},
}

// Args returns the flag list for cfg against the default CLI table.
func Args(cfg project.Config) []string {
	return ArgsWith(cfg, Defaults())
}

// ArgsWith returns the program, the project name and every flag whose value
// differs from d.
func ArgsWith(cfg project.Config, d CLIDefaults) []string {
	parts := []string{Program, cfg.ProjectName}
	value := func(flag, v string) {
		parts = append(parts, flag+" "+v)
	}
	number := func(flag string, v, def int) {
		if v != def {
			value(flag, strconv.Itoa(v))
		}
	}

	if cfg.Database != d.Database {
		value("--database", string(cfg.Database))
	}
	if cfg.ORMType != d.ORMType {
		value("--orm", string(cfg.ORMType))
	}
	if cfg.Auth != d.Auth {
		value("--auth", string(cfg.Auth))
	}
	if !cfg.EnableLogfire {
		parts = append(parts, "--no-logfire")
	}
	if !cfg.EnableDocker {
		parts = append(parts, "--no-docker")
	}
	if !cfg.GenerateEnv {
		parts = append(parts, "--no-env")
	}
	if !cfg.IncludeExampleCRUD {
		parts = append(parts, "--no-example-crud")
	}
	if cfg.Frontend != d.Frontend {
		value("--frontend", string(cfg.Frontend))
	}
	number("--backend-port", cfg.BackendPort, d.BackendPort)
	number("--frontend-port", cfg.FrontendPort, d.FrontendPort)
	number("--db-pool-size", cfg.DBPoolSize, d.DBPoolSize)
	number("--db-max-overflow", cfg.DBMaxOverflow, d.DBMaxOverflow)

	if cfg.EnableAIAgent {
		parts = append(parts, "--ai-agent")
		if cfg.AIFramework != d.AIFramework {
			value("--ai-framework", string(cfg.AIFramework))
		}
		if cfg.LLMProvider != d.LLMProvider {
			value("--llm-provider", string(cfg.LLMProvider))
		}
	}

	for _, s := range switches {
		if s.on(cfg) {
			parts = append(parts, s.flag)
		}
	}

	if cfg.OAuthProvider == project.OAuthGoogle {
		parts = append(parts, "--oauth-google")
	}
	if cfg.EnableSessionManagement {
		parts = append(parts, "--session-management")
	}
	if cfg.BackgroundTasks != d.Background {
		value("--task-queue", string(cfg.BackgroundTasks))
	}
	if cfg.CIType != d.CI {
		value("--ci", string(cfg.CIType))
	}
	if cfg.PythonVersion != d.PythonVersion {
		value("--python-version", cfg.PythonVersion)
	}

	return parts
}

// MultiLine renders the command with one flag per continuation line.
func MultiLine(cfg project.Config) string {
	return strings.Join(Args(cfg), lineBreak)
}

// OneLine renders the command on a single line, for copying.
func OneLine(cfg project.Config) string {
	return lineBreakRe.ReplaceAllString(MultiLine(cfg), " ")
}
