// Package ui renders CLI output with consistent styling.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kraftner/kraftner/internal/addons"
	"github.com/kraftner/kraftner/internal/bootstrap"
	"github.com/kraftner/kraftner/internal/health"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Success renders an affirmative message.
func Success(s string) string {
	return successStyle.Render("✓ " + s)
}

// Error renders a failure message.
func Error(s string) string {
	return errorStyle.Render("✗ " + s)
}

// Dim renders secondary detail.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// ApplySummary renders the post-apply overview of the cluster.
func ApplySummary(clusterName string, brokerIPs map[string]string) string {
	var b strings.Builder
	b.WriteString(Title(fmt.Sprintf("Cluster %s provisioned", clusterName)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %s", "BROKER", "PRIVATE IP")))
	b.WriteString("\n")

	names := sortedKeys(brokerIPs)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("%-24s %s\n", name, brokerIPs[name]))
	}
	b.WriteString("\n")
	b.WriteString(Dim("Brokers bootstrap themselves on first boot; run 'kraftner health' to check progress."))
	return b.String()
}

// HealthReport renders a health check result.
func HealthReport(report health.Report) string {
	var b strings.Builder
	b.WriteString(Title(fmt.Sprintf("Cluster %s", report.ClusterName)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %-16s %-18s %s", "BROKER", "ADDRESS", "BOOTSTRAP", "PORTS")))
	b.WriteString("\n")

	for _, broker := range report.Brokers {
		var ports []string
		for _, c := range broker.Checks {
			if c.Open {
				ports = append(ports, successStyle.Render(fmt.Sprintf("%d ok (%s)", c.Port, c.Latency.Round(time.Millisecond))))
			} else if c.Port != 0 {
				ports = append(ports, errorStyle.Render(fmt.Sprintf("%d closed", c.Port)))
			} else {
				ports = append(ports, errorStyle.Render(c.Err))
			}
		}
		b.WriteString(fmt.Sprintf("%-24s %-16s %s %s\n", broker.Name, broker.Address, bootstrapCell(broker), strings.Join(ports, "  ")))
	}

	b.WriteString("\n")
	if report.Healthy() {
		b.WriteString(Success("all brokers reachable"))
	} else {
		b.WriteString(Error("some brokers are unhealthy"))
	}
	return b.String()
}

// bootstrapCell renders the outcome a broker recorded at the end of
// its bootstrap run, or "unknown" when the status file could not be
// fetched.
func bootstrapCell(broker health.BrokerHealth) string {
	switch {
	case broker.Bootstrap == nil:
		return dimStyle.Render(fmt.Sprintf("%-18s", "unknown"))
	case broker.Bootstrap.Outcome == bootstrap.OutcomeOK:
		return successStyle.Render(fmt.Sprintf("%-18s", broker.Bootstrap.Outcome))
	default:
		return errorStyle.Render(fmt.Sprintf("%-18s", broker.Bootstrap.Outcome))
	}
}

// AddonList renders the addon toggles next to their deployed state.
func AddonList(statuses []addons.AddonStatus) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %-12s %-10s %-12s %s", "ADDON", "NAMESPACE", "ENABLED", "STATUS", "VERSION")))
	b.WriteString("\n")

	for _, st := range statuses {
		enabled := dimStyle.Render(fmt.Sprintf("%-10s", "no"))
		if st.Enabled {
			enabled = successStyle.Render(fmt.Sprintf("%-10s", "yes"))
		}
		status := dimStyle.Render(fmt.Sprintf("%-12s", "not installed"))
		if st.Installed {
			status = successStyle.Render(fmt.Sprintf("%-12s", st.Status))
		}
		b.WriteString(fmt.Sprintf("%-24s %-12s %s %s %s\n", st.Name, st.Namespace, enabled, status, st.Version))
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
