package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/domain/entities"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	balancedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2ECC71"))

	correctedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F1C40F"))

	blockedStyle = lipgloss.NewStyle().
			Faint(true)

	suspendedBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
)

const rule = "────────────────────────────────────────────────────────────────────────────"

func statusBadge(status string) string {
	if status == entities.Balanced.String() {
		return balancedBadge.Render(status)
	}
	return correctedBadge.Render(status)
}

func withCurrency(amount, currency string) string {
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), value)
}

func textCalculation(w io.Writer, r dto.CalculationResult) error {
	fmt.Fprintln(w, headingStyle.Render("FARAID ALLOCATION"))
	fmt.Fprintln(w, rule)
	field(w, "Calculation", r.CalculationID)
	field(w, "Estate", withCurrency(r.EstateValue, r.Currency))
	field(w, "Base number", fmt.Sprintf("%d -> %d", r.BaseNumberInitial, r.BaseNumberFinal))
	field(w, "Status", statusBadge(r.Status))
	if r.SpecialCase != "" {
		field(w, "Special case", r.SpecialCase)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-30s %4s %-18s %7s %16s %16s\n", "Heir", "Qty", "Fraction", "Shares", "Amount", "Each")
	fmt.Fprintln(w, rule)
	for _, h := range r.Heirs {
		line := fmt.Sprintf("%-30s %4d %-18s %7d %16s %16s",
			h.Category, h.Quantity, h.FractionLabel, h.ShareCount, h.Amount, h.AmountEach)
		if h.Blocked {
			line = blockedStyle.Render(line)
		}
		fmt.Fprintln(w, line)
		if h.Justification != "" {
			fmt.Fprintf(w, "    %s\n", labelStyle.Render(h.Justification))
		}
	}
	fmt.Fprintln(w)

	if len(r.Comparisons) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Denominator relations"))
		for _, c := range r.Comparisons {
			fmt.Fprintf(w, "  %d and %d: %s, lcm %d\n", c.A, c.B, c.Relation, c.LCM)
		}
		fmt.Fprintln(w)
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Steps"))
		for i, note := range r.Notes {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, note)
		}
	}
	return nil
}

func textComparison(w io.Writer, r dto.ScenarioComparisonResult) error {
	fmt.Fprintln(w, headingStyle.Render("SUSPENDED SHARE (MAUQUF)"))
	fmt.Fprintln(w, rule)
	field(w, "Estate", withCurrency(r.EstateValue, r.Currency))
	field(w, "Uncertain", fmt.Sprintf("%s (%s)", r.Uncertain, r.Status))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-30s %4s", "Heir", "Qty")
	for _, s := range r.Scenarios {
		fmt.Fprintf(w, " %16s", truncate(s.Name, 16))
	}
	fmt.Fprintf(w, " %16s\n", "Paid now")
	fmt.Fprintln(w, rule)
	for _, c := range r.Certain {
		fmt.Fprintf(w, "%-30s %4d", c.Category, c.Quantity)
		for _, amount := range c.PerScenario {
			if amount == "" {
				amount = "-"
			}
			fmt.Fprintf(w, " %16s", amount)
		}
		fmt.Fprintf(w, " %16s\n", c.Minimum)
	}
	fmt.Fprintln(w)

	for _, s := range r.Scenarios {
		if s.Error != "" {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("skipped "+s.Name+":"), s.Error)
		}
	}
	fmt.Fprintln(w, suspendedBox.Render("Suspended until resolved: "+withCurrency(r.Suspended, r.Currency)))
	return nil
}

func textChain(w io.Writer, r dto.ChainResult) error {
	fmt.Fprintln(w, headingStyle.Render("CHAINED SUCCESSION (MUNASAKHOT)"))
	fmt.Fprintln(w, rule)
	field(w, "Estate", withCurrency(r.EstateValue, r.Currency))
	field(w, "First base", fmt.Sprintf("%d", r.First.BaseNumberFinal))
	field(w, "Second heir", fmt.Sprintf("%s, %d shares", r.SecondDeceased, r.DeceasedShare))
	field(w, "Second base", fmt.Sprintf("%d", r.Second.BaseNumberFinal))
	field(w, "Relation", r.Relation)
	field(w, "Multipliers", fmt.Sprintf("%d x first, %d x second", r.FirstMultiplier, r.SecondMultiplier))
	field(w, "Combined base", fmt.Sprintf("%d", r.CombinedBase))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %-30s %4s %7s %16s %16s\n", "Problem", "Heir", "Qty", "Shares", "Amount", "Each")
	fmt.Fprintln(w, rule)
	for _, s := range r.Shares {
		fmt.Fprintf(w, "%-8d %-30s %4d %7d %16s %16s\n",
			s.Problem, s.Category, s.Quantity, s.ShareCount, s.Amount, s.AmountEach)
	}
	return nil
}

func textHeirs(w io.Writer, categories []*entities.HeirCategoryInfo) error {
	fmt.Fprintln(w, headingStyle.Render("HEIR CATEGORIES"))
	fmt.Fprintf(w, "%4s %-32s %-24s %-7s %s\n", "ID", "Name", "Arabic", "Sex", "Weight")
	fmt.Fprintln(w, rule)
	for _, c := range categories {
		fmt.Fprintf(w, "%4d %-32s %-24s %-7s %d\n", int(c.Category), c.DisplayName, c.ArabicName, c.Sex, c.Weight)
	}
	return nil
}

func textAudit(w io.Writer, records []AuditRecord) error {
	fmt.Fprintln(w, headingStyle.Render("AUDIT TRAIL"))
	for _, r := range records {
		fmt.Fprintf(w, "  v%-3d %s %-22s %s\n", r.Version, labelStyle.Render(r.Timestamp), r.Type, describe(r.Data))
	}
	return nil
}

func describe(data interface{}) string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", data), "&")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
