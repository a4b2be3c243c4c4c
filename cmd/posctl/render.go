package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// emit prints v as JSON when --json is set and otherwise calls table.
func (c *cli) emit(v any, table func()) error {
	if c.jsonOutput {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table()
	return nil
}

func (c *cli) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(c.out, t.Render())
}

func (c *cli) title(format string, args ...any) {
	fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *cli) println(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func money(d decimal.Decimal) string { return "Q " + d.StringFixed(2) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func join(values []string) string { return strings.Join(values, ", ") }
