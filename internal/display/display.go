// Package display renders pipeline results and retry schedules for the terminal.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/effect"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/policy"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/weather"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5DADE2")).
			Padding(1, 3)

	temperatureStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AF7AC5"))

	failureStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#E74C3C")).
			Padding(0, 2)

	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E74C3C"))

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// Card renders successful conditions.
func Card(c weather.Conditions) string {
	lines := []string{
		temperatureStyle.Render(fmt.Sprintf("%s %s", formatNumber(c.Temperature), c.TemperatureUnit)),
		c.Description,
		"",
		detailStyle.Render(fmt.Sprintf("Wind  %s %s | %s %s",
			formatNumber(c.WindSpeed), c.WindSpeedUnit,
			formatNumber(c.WindDirection), c.WindDirectionUnit)),
		detailStyle.Render("Where " + place(c)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Failure renders a terminal failure with its kind and full message.
func Failure(e *apperror.Error) string {
	if e == nil {
		return failureStyle.Render(kindStyle.Render("UNKNOWN"))
	}
	body := kindStyle.Render(string(e.Kind())) + "\n" + e.Message()
	if cause := e.Unwrap(); cause != nil {
		body += "\n\ncaused by: " + cause.Error()
	}
	return failureStyle.Render(body)
}

// Result renders either side of a pipeline result.
func Result(r effect.Result[*apperror.Error, weather.Conditions]) string {
	return effect.Fold(r, Failure, Card)
}

// Schedule renders every attempt a policy allows: the wait before it,
// the total time spent waiting so far and the attempt's deadline.
func Schedule(p policy.RetryPolicy) string {
	timeout := "none"
	if p.AttemptTimeout() > 0 {
		timeout = p.AttemptTimeout().String()
	}

	rows := [][]string{{"1", "-", "0s", timeout}}
	var waited time.Duration
	for i, d := range p.Delays() {
		waited += d
		rows = append(rows, []string{
			strconv.Itoa(i + 2),
			formatDuration(d),
			formatDuration(waited),
			timeout,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ATTEMPT", "DELAY", "WAITED", "TIMEOUT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	return t.String()
}

func place(c weather.Conditions) string {
	switch {
	case c.City != "" && c.Country != "":
		return c.City + ", " + c.Country
	case c.City != "":
		return c.City
	case c.Country != "":
		return c.Country
	default:
		return "unknown location"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDuration rounds to milliseconds so float backoff factors print cleanly.
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
