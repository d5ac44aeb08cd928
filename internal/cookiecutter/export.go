package cookiecutter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/company/fastapi-configurator/internal/project"
)

// FileName is the name the exported context is saved under.
const FileName = "cookiecutter.json"

// Export renders cfg as an indented cookiecutter.json document.
func Export(cfg project.Config) ([]byte, error) {
	raw, err := json.Marshal(Project(cfg))
	if err != nil {
		return nil, fmt.Errorf("encoding context: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting context: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// logfireKeys is the flat form of the nested logfire_features block.
type logfireKeys struct {
	FastAPI  *bool `json:"logfire_fastapi"`
	Database *bool `json:"logfire_database"`
	Redis    *bool `json:"logfire_redis"`
	Celery   *bool `json:"logfire_celery"`
	HTTPX    *bool `json:"logfire_httpx"`
}

// Decode reads a cookiecutter.json document back into a configuration.
// Derived keys are ignored. Keys the document omits keep their defaults.
func Decode(data []byte) (project.Config, error) {
	cfg := project.Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return project.Config{}, fmt.Errorf("decoding %s: %w", FileName, err)
	}

	var lf logfireKeys
	if err := json.Unmarshal(data, &lf); err != nil {
		return project.Config{}, fmt.Errorf("decoding %s: %w", FileName, err)
	}
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&cfg.LogfireFeatures.FastAPI, lf.FastAPI)
	apply(&cfg.LogfireFeatures.Database, lf.Database)
	apply(&cfg.LogfireFeatures.Redis, lf.Redis)
	apply(&cfg.LogfireFeatures.Celery, lf.Celery)
	apply(&cfg.LogfireFeatures.HTTPX, lf.HTTPX)

	return cfg, nil
}
