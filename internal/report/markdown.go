package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"reddlag/app"
	"reddlag/domain/model"
)

// RenderMarkdown builds the run report: manifest, response summary,
// trend, elimination trace, final coefficients, VIF table and the
// accumulated data-quality warnings. Narrative interpretation is left
// to the analyst; this is the numbers.
func RenderMarkdown(result *app.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Redd / Drawdown Analysis Run\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", result.RunID)
	fmt.Fprintf(&b, "- Started: %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Elapsed: %s\n", result.Elapsed)
	fmt.Fprintf(&b, "- Observations: %d, combined years: %d, modeled years: %d\n\n",
		result.ObservationCount, len(result.Combined), result.ModeledYears)

	fmt.Fprintf(&b, "## Combined response (%s)\n\n", app.TotalReddsKey)
	fmt.Fprintf(&b, "| n | mean | median | min | max | sd |\n")
	fmt.Fprintf(&b, "|---|------|--------|-----|-----|----|\n")
	s := result.Summary
	fmt.Fprintf(&b, "| %d | %.1f | %.1f | %.0f | %.0f | %.1f |\n\n",
		s.Count, s.Mean, s.Median, s.Min, s.Max, s.StdDev)

	fmt.Fprintf(&b, "## Trend\n\n")
	fmt.Fprintf(&b, "`%s`\n\n", result.Trend.Formula)
	writeCoefficients(&b, result.Trend)

	fmt.Fprintf(&b, "## Model selection\n\n")
	fmt.Fprintf(&b, "- Saturated: `%s`\n", result.Selection.Saturated)
	fmt.Fprintf(&b, "- Final: `%s`\n", result.Selection.Final.Formula)
	fmt.Fprintf(&b, "- Threshold: %.3g\n\n", result.Selection.Alpha)

	if len(result.Selection.Trace) == 0 {
		fmt.Fprintf(&b, "No predictor could be dropped; the saturated model is minimal adequate.\n\n")
	} else {
		fmt.Fprintf(&b, "| step | dropped | p-value |\n")
		fmt.Fprintf(&b, "|------|---------|---------|\n")
		for _, step := range result.Selection.Trace {
			fmt.Fprintf(&b, "| %d | %s | %.4f |\n", step.Step, step.Dropped, step.PValue)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "### Final model coefficients\n\n")
	writeCoefficients(&b, result.Selection.Final)

	fmt.Fprintf(&b, "## Variance inflation (saturated model)\n\n")
	fmt.Fprintf(&b, "| predictor | VIF |\n")
	fmt.Fprintf(&b, "|-----------|-----|\n")
	for _, name := range sortedKeys(result.VIF) {
		fmt.Fprintf(&b, "| %s | %.2f |\n", name, result.VIF[name])
	}
	fmt.Fprintf(&b, "\n")

	warnings := result.Warnings()
	fmt.Fprintf(&b, "## Data-quality warnings (%d)\n\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	if len(warnings) == 0 {
		fmt.Fprintf(&b, "None.\n")
	}

	return b.String()
}

// RenderHTML converts the markdown report to a standalone HTML page
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Redd / Drawdown Analysis",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func writeCoefficients(b *strings.Builder, fit *model.LinearFit) {
	fmt.Fprintf(b, "| term | estimate |\n")
	fmt.Fprintf(b, "|------|----------|\n")
	fmt.Fprintf(b, "| %s | %.4f |\n", model.InterceptKey, fit.Coefficients[model.InterceptKey])
	for _, name := range fit.Formula.Predictors {
		fmt.Fprintf(b, "| %s | %.4f |\n", name, fit.Coefficients[name])
	}
	rsq := fit.RSquared
	if math.IsNaN(rsq) {
		rsq = 0
	}
	fmt.Fprintf(b, "\nR² = %.3f, RSS = %.3f, n = %d\n\n", rsq, fit.RSS, fit.N)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
