package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/company/fastapi-configurator/internal/project"
)

func TestSaveAndLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), AnswersFile)

	cfg := project.Default()
	cfg.ProjectName = "shop_api"
	cfg.Database = project.DatabaseMongoDB
	cfg.EnableWebhooks = true
	cfg.BackendPort = 9000

	if err := SaveAnswers(path, NewAnswers("", cfg)); err != nil {
		t.Fatalf("SaveAnswers() error: %v", err)
	}

	loaded, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers() error: %v", err)
	}

	if loaded.Version != AnswersVersion {
		t.Errorf("Version = %d, want %d", loaded.Version, AnswersVersion)
	}
	if loaded.Project.ProjectName != "shop_api" {
		t.Errorf("ProjectName = %q, want %q", loaded.Project.ProjectName, "shop_api")
	}
	if loaded.Project.Database != project.DatabaseMongoDB {
		t.Errorf("Database = %q, want %q", loaded.Project.Database, project.DatabaseMongoDB)
	}
	if loaded.Project.BackendPort != 9000 {
		t.Errorf("BackendPort = %d, want 9000", loaded.Project.BackendPort)
	}
	if project.Fingerprint(loaded.Project) != project.Fingerprint(project.Resolve(cfg)) {
		t.Error("loaded configuration differs from the saved one")
	}
	if loaded.Derived != nil {
		t.Error("derived section should be ignored on load")
	}
}

func TestLoadAnswersMergesOverDefaults(t *testing.T) {
	content := "version: 1\nproject:\n  project_name: billing\n  enable_redis: true\n"
	a, err := ParseAnswers([]byte(content))
	if err != nil {
		t.Fatalf("ParseAnswers() error: %v", err)
	}

	want := project.Default()
	if a.Project.ProjectName != "billing" {
		t.Errorf("ProjectName = %q, want %q", a.Project.ProjectName, "billing")
	}
	if a.Project.Database != want.Database {
		t.Errorf("Database = %q, want default %q", a.Project.Database, want.Database)
	}
	if a.Project.AuthorEmail != want.AuthorEmail {
		t.Errorf("AuthorEmail = %q, want default %q", a.Project.AuthorEmail, want.AuthorEmail)
	}
	if !a.Project.EnableRedis {
		t.Error("EnableRedis should be true")
	}
}

func TestLoadAnswersAppliesPreset(t *testing.T) {
	content := "version: 1\npreset: minimal\nproject:\n  project_name: tiny\n"
	a, err := ParseAnswers([]byte(content))
	if err != nil {
		t.Fatalf("ParseAnswers() error: %v", err)
	}
	minimal, err := project.WithPreset("minimal")
	if err != nil {
		t.Fatal(err)
	}
	if a.Preset != "minimal" {
		t.Errorf("Preset = %q, want minimal", a.Preset)
	}
	if a.Project.EnableAIAgent != minimal.EnableAIAgent {
		t.Errorf("EnableAIAgent = %v, want preset value %v", a.Project.EnableAIAgent, minimal.EnableAIAgent)
	}
	if a.Project.ProjectName != "tiny" {
		t.Errorf("ProjectName = %q, want tiny", a.Project.ProjectName)
	}
}

func TestLoadAnswersResolves(t *testing.T) {
	content := "project:\n  enable_caching: true\n  enable_redis: false\n"
	a, err := ParseAnswers([]byte(content))
	if err != nil {
		t.Fatalf("ParseAnswers() error: %v", err)
	}
	if !a.Project.EnableRedis {
		t.Error("caching should force redis on after load")
	}
}

func TestLoadAnswersErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid yaml", "project: [", "parsing answers"},
		{"unknown field", "project:\n  favourite_colour: blue\n", "parsing answers"},
		{"unknown preset", "preset: huge\n", "unknown preset"},
		{"future version", "version: 99\n", "unsupported answers version"},
		{"invalid port", "project:\n  backend_port: 80\n", "backend_port"},
		{"invalid name", "project:\n  project_name: My-App\n", "project_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswers([]byte(tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadAnswersNotFound(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), AnswersFile))
	if err == nil {
		t.Fatal("LoadAnswers() should return error for missing file")
	}
}

func TestAnswersExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), AnswersFile)
	if AnswersExists(path) {
		t.Error("AnswersExists() = true before save")
	}
	if err := SaveAnswers(path, NewAnswers("", project.Default())); err != nil {
		t.Fatal(err)
	}
	if !AnswersExists(path) {
		t.Error("AnswersExists() = false after save")
	}
}

func TestSaveAnswersLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", AnswersFile)
	if err := SaveAnswers(path, NewAnswers("", project.Default())); err != nil {
		t.Fatalf("SaveAnswers() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading answers: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "---\n") {
		t.Error("answers should start with YAML document start marker '---'")
	}
	idx := strings.Index(content, "# Derived context")
	if idx < 0 {
		t.Fatal("answers should contain the derived separator comment")
	}
	if !strings.Contains(content, "auto-generated, do not edit") {
		t.Error("answers should contain do-not-edit warning")
	}
	if strings.Index(content, "project_name:") > idx {
		t.Error("user fields should come before the separator")
	}
	if !strings.Contains(content[idx:], "use_postgresql: true") {
		t.Error("derived section should list the projected flags")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}
}

func TestEditedDerivedSectionIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), AnswersFile)
	if err := SaveAnswers(path, NewAnswers("", project.Default())); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	edited := strings.Replace(string(data), "use_postgresql: true", "use_postgresql: false", 1)
	a, err := ParseAnswers([]byte(edited))
	if err != nil {
		t.Fatalf("ParseAnswers() error: %v", err)
	}
	if a.Project.Database != project.DatabasePostgreSQL {
		t.Errorf("Database = %q, want postgresql", a.Project.Database)
	}
}
