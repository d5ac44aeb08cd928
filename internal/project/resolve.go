package project

import (
	"fmt"

	"github.com/company/fastapi-configurator/internal/resolver"
)

// fixup repairs one cross-field dependency. It reports whether it changed
// anything.
type fixup struct {
	id    string
	after []string
	apply func(c *Config) bool
}

var fixups = []fixup{
	{
		// Caching, Redis-backed rate limiting, any task queue and Logfire's
		// Redis instrumentation all need the Redis client.
		id: "require-redis",
		apply: func(c *Config) bool {
			if c.EnableRedis || !NeedsRedis(*c) {
				return false
			}
			c.EnableRedis = true
			return true
		},
	},
	{
		id:    "logfire-database",
		after: []string{"require-redis"},
		apply: func(c *Config) bool {
			if !c.EnableLogfire || c.Database != DatabaseNone || !c.LogfireFeatures.Database {
				return false
			}
			c.LogfireFeatures.Database = false
			return true
		},
	},
	{
		id:    "logfire-celery",
		after: []string{"require-redis"},
		apply: func(c *Config) bool {
			if !c.EnableLogfire || c.BackgroundTasks == BackgroundTasksCelery || !c.LogfireFeatures.Celery {
				return false
			}
			c.LogfireFeatures.Celery = false
			return true
		},
	},
}

var fixupOrder = mustOrderFixups()

func mustOrderFixups() []fixup {
	infos := make([]resolver.RuleInfo, len(fixups))
	byID := make(map[string]fixup, len(fixups))
	for i, f := range fixups {
		infos[i] = resolver.RuleInfo{ID: f.id, After: f.after}
		byID[f.id] = f
	}
	res, err := resolver.NewResolver(infos).All()
	if err != nil {
		panic(fmt.Sprintf("ordering configuration fixups: %v", err))
	}
	ordered := make([]fixup, len(res.Order))
	for i, id := range res.Order {
		ordered[i] = byID[id]
	}
	return ordered
}

// NeedsRedis reports whether any enabled feature depends on Redis.
func NeedsRedis(c Config) bool {
	return c.EnableCaching ||
		(c.EnableRateLimiting && c.RateLimitStorage == RateLimitStorageRedis) ||
		c.BackgroundTasks != BackgroundTasksNone ||
		(c.EnableLogfire && c.LogfireFeatures.Redis)
}

// Resolve repairs fields that became inconsistent after an edit. It never
// rejects a configuration and a single pass reaches the fixed point, so
// Resolve(Resolve(c)) == Resolve(c).
func Resolve(c Config) Config {
	c, _ = resolveTracked(c)
	return c
}

// resolveTracked also returns the IDs of the fixups that fired.
func resolveTracked(c Config) (Config, []string) {
	var fired []string
	for _, f := range fixupOrder {
		if f.apply(&c) {
			fired = append(fired, f.id)
		}
	}
	return c, fired
}
