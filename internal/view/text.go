package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// RenderText writes the ledger as an aligned terminal list:
//
//	Expenses (2)
//	  0  Coffee  ₹ 3.50
//	  1  Book    ₹ 12.99
//	Total: ₹ 16.49
func RenderText(w io.Writer, v Ledger) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Expenses (%d)", v.Count)))
	b.WriteString("\n")

	if len(v.Rows) == 0 {
		b.WriteString(mutedStyle.Render("  no expenses yet"))
		b.WriteString("\n")
	}

	nameWidth, idxWidth := 0, 0
	for _, r := range v.Rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
		idxWidth = max(idxWidth, len(strconv.Itoa(r.Index)))
	}
	for _, r := range v.Rows {
		idx := lipgloss.NewStyle().Width(idxWidth).Align(lipgloss.Right).Render(strconv.Itoa(r.Index))
		name := lipgloss.NewStyle().Width(nameWidth).Render(r.Name)
		fmt.Fprintf(&b, "  %s  %s  %s\n", indexStyle.Render(idx), name, r.Amount)
	}

	b.WriteString(totalStyle.Render("Total: " + v.Currency + " " + v.Total))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
