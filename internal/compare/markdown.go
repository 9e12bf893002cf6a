package compare

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders a comparison Result as a Markdown string.
func RenderMarkdown(result *Result) string {
	var sb strings.Builder

	sb.WriteString("# Baseline vs Filtered Comparison\n\n")
	sb.WriteString(fmt.Sprintf("## Verdict: %s\n\n", result.Verdict))

	sb.WriteString("| Criterion | Baseline | Filtered | Improved |\n")
	sb.WriteString("|-----------|----------|----------|----------|\n")
	for _, c := range result.Criteria {
		improved := "no"
		if c.Improved {
			improved = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			c.Name, c.Baseline, c.Enhanced, improved))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Final equity delta: %+.2f\n\n", result.FinalEquityDelta))
	sb.WriteString(fmt.Sprintf("Trade count delta: %+d\n", result.TradeCountDelta))

	return sb.String()
}
