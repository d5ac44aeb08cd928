package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// combinations walks every combination of the fields the fixups read.
func combinations(fn func(c Config)) {
	bools := []bool{false, true}
	for _, db := range DatabaseValues {
		for _, bg := range BackgroundTasksValues {
			for _, storage := range RateLimitStorageValues {
				for _, caching := range bools {
					for _, rateLimit := range bools {
						for _, redis := range bools {
							for _, logfire := range bools {
								for _, lfRedis := range bools {
									for _, lfDB := range bools {
										for _, lfCelery := range bools {
											c := Default()
											c.Database = db
											c.BackgroundTasks = bg
											c.RateLimitStorage = storage
											c.EnableCaching = caching
											c.EnableRateLimiting = rateLimit
											c.EnableRedis = redis
											c.EnableLogfire = logfire
											c.LogfireFeatures.Redis = lfRedis
											c.LogfireFeatures.Database = lfDB
											c.LogfireFeatures.Celery = lfCelery
											fn(c)
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	combinations(func(c Config) {
		once := Resolve(c)
		twice := Resolve(once)
		if once != twice {
			t.Fatalf("Resolve not idempotent for %+v", c)
		}
	})
}

func TestResolveCachingImpliesRedis(t *testing.T) {
	combinations(func(c Config) {
		r := Resolve(c)
		if NeedsRedis(r) && !r.EnableRedis {
			t.Fatalf("redis not enabled for %+v", c)
		}
		if c.EnableCaching && !r.EnableRedis {
			t.Fatalf("caching without redis for %+v", c)
		}
	})
}

func TestResolveNeverDisablesRedis(t *testing.T) {
	c := Default()
	c.EnableRedis = true
	assert.True(t, Resolve(c).EnableRedis)
}

func TestResolveRateLimitStorage(t *testing.T) {
	c := Default()
	c.EnableRateLimiting = true
	c.RateLimitStorage = RateLimitStorageMemory
	assert.False(t, Resolve(c).EnableRedis, "in-memory rate limiting does not need redis")

	c.RateLimitStorage = RateLimitStorageRedis
	assert.True(t, Resolve(c).EnableRedis)
}

func TestResolveLogfireSubFlags(t *testing.T) {
	c := Default()
	c.Database = DatabaseNone
	c.LogfireFeatures.Celery = true
	c.BackgroundTasks = BackgroundTasksTaskiq

	r := Resolve(c)
	assert.False(t, r.LogfireFeatures.Database)
	assert.False(t, r.LogfireFeatures.Celery)
	assert.True(t, r.LogfireFeatures.FastAPI)

	c.BackgroundTasks = BackgroundTasksCelery
	assert.True(t, Resolve(c).LogfireFeatures.Celery)
}

func TestResolveLeavesHiddenLogfireFlagsAlone(t *testing.T) {
	c := Default()
	c.EnableLogfire = false
	c.Database = DatabaseNone
	assert.True(t, Resolve(c).LogfireFeatures.Database)
}

func TestFixupOrder(t *testing.T) {
	if assert.NotEmpty(t, fixupOrder) {
		assert.Equal(t, "require-redis", fixupOrder[0].id)
	}
}
