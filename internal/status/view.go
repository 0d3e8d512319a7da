package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderConfigInfo(&data.Config))
	b.WriteString("\n")

	b.WriteString(renderCacheInfo(&data.Cache))
	b.WriteString("\n")

	b.WriteString(renderRegistryInfo(&data.Registry))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")
	b.WriteString(titleStyle.Render("🐚 Shell: ") + valueStyle.Render(data.Shell))
	return b.String()
}

func renderConfigInfo(info *ConfigInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(info.Path) + "\n")

	if !info.Exists {
		b.WriteString("   " + errorStyle.Render("✗ Not found") + "\n")
		b.WriteString("   " + warningStyle.Render("Run 'redtime configure' to create it"))
		return b.String()
	}

	if info.Valid {
		b.WriteString("   " + keyStyle.Render("Status: ") + successStyle.Render("✓ Valid") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("Status: ") + errorStyle.Render("✗ Invalid") + "\n")
		for _, msg := range info.Errors {
			b.WriteString("      " + errorStyle.Render("• "+msg) + "\n")
		}
	}

	if info.APIURL != "" {
		b.WriteString("   " + keyStyle.Render("API URL: ") + valueStyle.Render(info.APIURL) + "\n")
	}
	b.WriteString("   " + keyStyle.Render("Auth: ") + valueStyle.Render(info.AuthMethod))

	return b.String()
}

func renderCacheInfo(info *CacheInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💾 Catalog cache:") + "\n")

	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(info.Path) + "\n")

	if !info.Exists {
		b.WriteString("   " + subtleStyle.Render("Not created yet"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(formatBytes(info.Size)) + "\n")
	b.WriteString("   " + keyStyle.Render("Entries: ") + valueStyle.Render(fmt.Sprintf("%d", info.Entries)) + "\n")
	b.WriteString("   " + keyStyle.Render("Updated: ") + valueStyle.Render(info.Updated.Format("2006-01-02 15:04:05")))

	return b.String()
}

func renderRegistryInfo(info *RegistryInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔄 Completion surface:") + "\n")

	b.WriteString("   " + keyStyle.Render("Commands: ") + valueStyle.Render(fmt.Sprintf("%d", info.Commands)) + "\n")
	b.WriteString("   " + keyStyle.Render("Options: ") + valueStyle.Render(fmt.Sprintf("%d", info.Options)))

	return b.String()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
