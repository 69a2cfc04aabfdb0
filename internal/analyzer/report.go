package analyzer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"jitcheck/internal/config"
	"jitcheck/internal/models"

	"github.com/fatih/color"
)

// ReportGenerator handles formatting and displaying analysis results
type ReportGenerator struct {
	format string
	config *config.Config
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(format string) *ReportGenerator {
	return &ReportGenerator{
		format: format,
		config: config.DefaultConfig(),
	}
}

func NewReportGeneratorWithConfig(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate creates a formatted report from analysis results
func (r *ReportGenerator) Generate(result *models.AnalysisResult) string {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	default:
		return r.generateConsole(result)
	}
}

// generateJSON creates a JSON report
func (r *ReportGenerator) generateJSON(result *models.AnalysisResult) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON report: %v", err)
	}
	return string(data)
}

// generateConsole creates a colorized console report
func (r *ReportGenerator) generateConsole(result *models.AnalysisResult) string {
	var report strings.Builder

	useColors := true
	showDetails := true
	if r.config != nil {
		useColors = r.config.Output.Colors
		showDetails = r.config.Output.ShowDetails
	}

	// Header
	if useColors {
		report.WriteString(color.CyanString("🔥 JITCheck Compilation Report\n"))
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString("JITCheck Compilation Report\n")
		report.WriteString("=======================================\n\n")
	}

	r.writeSummary(&report, result, useColors)

	if len(result.Suggestions) > 0 {
		r.writeTypeSummary(&report, result, useColors)

		report.WriteString("\n")
		r.writeDetailedSuggestions(&report, result, useColors, showDetails)
	} else {
		if useColors {
			report.WriteString(color.GreenString("🎉 No tuning opportunities detected in the compiled hot methods!\n\n"))
		} else {
			report.WriteString("No tuning opportunities detected in the compiled hot methods!\n\n")
		}
	}

	// Footer
	if useColors {
		report.WriteString(color.WhiteString("Analysis completed in %s\n", result.AnalysisDuration))
	} else {
		report.WriteString(fmt.Sprintf("Analysis completed in %s\n", result.AnalysisDuration))
	}

	return report.String()
}

func (r *ReportGenerator) writeSummary(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("📊 Summary:\n"))
	} else {
		report.WriteString("Summary:\n")
	}
	report.WriteString(fmt.Sprintf("   Log: %s\n", result.Log))
	report.WriteString(fmt.Sprintf("   Compiled members analyzed: %d\n", result.MembersAnalyzed))
	report.WriteString(fmt.Sprintf("   Suggestions found: %d\n", result.TotalSuggestions))
	report.WriteString("\n")
}

func (r *ReportGenerator) writeTypeSummary(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("📋 Suggestions by Category:\n"))
	} else {
		report.WriteString("Suggestions by Category:\n")
	}

	categories := []string{
		models.SuggestionInlining.String(),
		models.SuggestionBranch.String(),
	}
	for _, category := range categories {
		count := result.SuggestionsByType[category]
		if count > 0 {
			if useColors {
				emoji, colorFunc := r.getCategoryDisplay(category)
				report.WriteString(fmt.Sprintf("   %s %s: %s\n", emoji, category, colorFunc(fmt.Sprintf("%d", count))))
			} else {
				report.WriteString(fmt.Sprintf("   %s: %d\n", category, count))
			}
		}
	}
}

func (r *ReportGenerator) getCategoryDisplay(category string) (string, func(a ...interface{}) string) {
	switch category {
	case "INLINING":
		return "📦", color.New(color.FgYellow).SprintFunc()
	case "BRANCH":
		return "🔀", color.New(color.FgHiYellow).SprintFunc()
	default:
		return "❓", color.New(color.FgWhite).SprintFunc()
	}
}

func (r *ReportGenerator) writeDetailedSuggestions(report *strings.Builder, result *models.AnalysisResult, useColors, showDetails bool) {
	if useColors {
		report.WriteString(color.WhiteString("🔍 Suggestions (highest score first):\n"))
	} else {
		report.WriteString("Suggestions (highest score first):\n")
	}
	report.WriteString(strings.Repeat("─", 50) + "\n\n")

	// Rank for display only; the sink order stays untouched.
	ranked := make([]models.Suggestion, len(result.Suggestions))
	copy(ranked, result.Suggestions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	top := 0
	if r.config != nil {
		top = r.config.Output.Top
	}
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	for i, suggestion := range ranked {
		r.writeSuggestionDetail(report, suggestion, i+1, useColors, showDetails)
		report.WriteString("\n")
	}
}

func (r *ReportGenerator) writeSuggestionDetail(report *strings.Builder, s models.Suggestion, index int, useColors, showDetails bool) {
	member := "unknown member"
	if s.Member != nil {
		member = fmt.Sprintf("%s %s", s.Member.FullyQualifiedClassName(), s.Member.UnqualifiedSignature())
	}

	if useColors {
		emoji, categoryColor := r.getCategoryDisplay(s.Type.String())

		report.WriteString(fmt.Sprintf("%s Suggestion #%d - %s (score %s)\n",
			emoji, index, categoryColor(s.Type.String()),
			color.New(color.FgRed).SprintFunc()(fmt.Sprintf("%d", s.Score))))
		report.WriteString(color.CyanString("   📍 Member: %s @ bytecode %d\n", member, s.BytecodeOffset))

		if showDetails {
			for _, line := range strings.Split(s.Text, "\n") {
				if strings.TrimSpace(line) != "" {
					report.WriteString(color.WhiteString("      %s\n", strings.TrimSpace(line)))
				}
			}
		}
	} else {
		report.WriteString(fmt.Sprintf("Suggestion #%d - %s (score %d)\n", index, s.Type.String(), s.Score))
		report.WriteString(fmt.Sprintf("   Member: %s @ bytecode %d\n", member, s.BytecodeOffset))

		if showDetails {
			for _, line := range strings.Split(s.Text, "\n") {
				if strings.TrimSpace(line) != "" {
					report.WriteString(fmt.Sprintf("      %s\n", strings.TrimSpace(line)))
				}
			}
		}
	}
}
