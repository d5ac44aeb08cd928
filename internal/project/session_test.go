package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSet(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)

	require.NoError(t, s.Set("database", "sqlite"))
	assert.Equal(t, DatabaseSQLite, s.Snapshot().Database)

	require.NoError(t, s.Set("backend_port", "9000"))
	assert.Equal(t, 9000, s.Snapshot().BackendPort)

	require.NoError(t, s.Set("logfire_features.httpx", "true"))
	assert.True(t, s.Snapshot().LogfireFeatures.HTTPX)
	assert.True(t, s.Snapshot().LogfireFeatures.FastAPI, "sibling toggles survive")
}

func TestSessionSetResolves(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)
	require.False(t, s.Snapshot().EnableRedis)

	require.NoError(t, s.Set("enable_caching", "true"))
	assert.True(t, s.Snapshot().EnableRedis)
	assert.Equal(t, []string{"require-redis"}, s.AutoFixed())
}

func TestSessionSetErrors(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)

	var fe *FieldError

	err = s.Set("no_such_field", "1")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "unknown field", fe.Message)

	err = s.Set("backend_port", "lots")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "backend_port", fe.Field)

	// format errors are reported but the value is still stored
	err = s.Set("backend_port", "80")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 80, s.Snapshot().BackendPort)

	err = s.Set("project_name", "")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "project_name", fe.Field)
}

func TestSessionSetRejectsUnknownEnumValue(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)
	before := s.Snapshot()

	err = s.Set("database", "oracle")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "database", fe.Field)
	assert.Contains(t, fe.Message, `"oracle"`)
	assert.Equal(t, DatabasePostgreSQL, s.Snapshot().Database)
	assert.False(t, s.Changed(before))

	err = s.Set("ci_type", "jenkins")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, CIGitHub, s.Snapshot().CIType)
}

func TestSessionUpdateDoesNotBlockOtherFields(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)

	err = s.Update(func(c *Config) {
		c.ProjectName = "Bad Name"
		c.EnableSentry = true
	})
	require.Error(t, err)
	assert.True(t, s.Snapshot().EnableSentry)
}

func TestSessionApplyPreset(t *testing.T) {
	s, err := NewSession("")
	require.NoError(t, err)
	before := s.Snapshot()

	require.NoError(t, s.ApplyPreset("minimal"))
	assert.Equal(t, "minimal", s.Preset())
	assert.True(t, s.Changed(before))
	assert.Equal(t, DatabaseNone, s.Snapshot().Database)

	assert.Error(t, s.ApplyPreset("nope"))
	assert.Equal(t, "minimal", s.Preset())
}

func TestFingerprintStable(t *testing.T) {
	assert.Equal(t, Fingerprint(Default()), Fingerprint(Default()))
	c := Default()
	c.EnableSentry = true
	assert.NotEqual(t, Fingerprint(Default()), Fingerprint(c))
}
