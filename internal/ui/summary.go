package ui

import (
	"fmt"
	"strings"

	"github.com/company/fastapi-configurator/internal/project"
)

// SummaryItem is one labelled line of the review summary.
type SummaryItem struct {
	Label string
	Value string
	Muted bool
}

// Summary is the review screen shown before generating.
type Summary struct {
	ProjectName string
	SavedAs     string
	Items       []SummaryItem
	Badges      []string
}

// Summarize builds the review summary for cfg.
func Summarize(cfg project.Config) Summary {
	s := Summary{ProjectName: cfg.ProjectName, SavedAs: project.Slug(cfg.ProjectName)}

	s.Items = append(s.Items, SummaryItem{Label: "Database", Value: project.DatabaseLabels[cfg.Database]})
	if project.ShowORMType(cfg) {
		s.Items = append(s.Items, SummaryItem{Label: "ORM", Value: project.ORMLabels[cfg.ORMType]})
	}
	s.Items = append(s.Items, SummaryItem{Label: "Auth", Value: project.AuthLabels[cfg.Auth]})
	if cfg.EnableAIAgent {
		s.Items = append(s.Items, SummaryItem{
			Label: "AI",
			Value: fmt.Sprintf("%s (%s)", project.AIFrameworkLabels[cfg.AIFramework], project.LLMProviderLabels[cfg.LLMProvider]),
		})
	} else {
		s.Items = append(s.Items, SummaryItem{Label: "AI", Value: "None", Muted: true})
	}
	s.Items = append(s.Items, SummaryItem{Label: "Frontend", Value: project.FrontendLabels[cfg.Frontend], Muted: cfg.Frontend == project.FrontendNone})

	docker := SummaryItem{Label: "Docker", Value: "No", Muted: true}
	if cfg.EnableDocker {
		docker = SummaryItem{Label: "Docker", Value: "Yes"}
		if cfg.ReverseProxy != project.ReverseProxyNone {
			docker.Value += " + " + cfg.ReverseProxy.ShortLabel()
		}
	}
	s.Items = append(s.Items,
		docker,
		SummaryItem{Label: "CI/CD", Value: project.CILabels[cfg.CIType], Muted: cfg.CIType == project.CINone},
		SummaryItem{Label: "Python", Value: cfg.PythonVersion},
	)

	s.Badges = FeatureBadges(cfg)
	return s
}

// FeatureBadges lists the enabled optional integrations in display order.
func FeatureBadges(cfg project.Config) []string {
	var badges []string
	if cfg.OAuthProvider != project.OAuthNone {
		badges = append(badges, "OAuth: "+project.OAuthProviderLabels[cfg.OAuthProvider])
	}
	if cfg.EnableAIAgent && cfg.EnableConversationPersistence {
		badges = append(badges, "Persistence")
	}
	toggles := []struct {
		on    bool
		label string
	}{
		{cfg.EnableRedis, "Redis"},
		{cfg.EnableCaching, "Caching"},
		{cfg.EnableRateLimiting, "Rate Limit"},
		{cfg.EnableLogfire, "Logfire"},
		{cfg.EnableSentry, "Sentry"},
		{cfg.EnablePrometheus, "Prometheus"},
		{cfg.EnableWebSockets, "WebSockets"},
		{cfg.EnableFileStorage, "File Storage"},
		{cfg.EnableWebhooks, "Webhooks"},
		{cfg.EnableAdminPanel, "Admin"},
		{cfg.EnableKubernetes, "K8s"},
	}
	for _, t := range toggles {
		if t.on {
			badges = append(badges, t.label)
		}
	}
	return badges
}

// Summary prints the review summary.
func (o *Output) Summary(s Summary) {
	o.Heading(s.ProjectName)
	if s.SavedAs != s.ProjectName {
		fmt.Fprintln(o.out, o.Dim("Will be saved as: "+s.SavedAs))
	}

	width := 0
	for _, it := range s.Items {
		width = max(width, len(it.Label))
	}
	for _, it := range s.Items {
		value := it.Value
		if it.Muted {
			value = o.Dim(value)
		} else {
			value = o.Noun(value)
		}
		fmt.Fprintf(o.out, "  %-*s  %s\n", width, it.Label, value)
	}

	if len(s.Badges) > 0 {
		tags := make([]string, len(s.Badges))
		for i, b := range s.Badges {
			tags[i] = "[" + b + "]"
		}
		fmt.Fprintf(o.out, "  %s\n", strings.Join(tags, " "))
	}
}
