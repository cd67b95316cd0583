package server

import (
	"fmt"
	"strings"

	"mensa-backend/services/mensa"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

const footerTemplate = "For usage info see " + ansiYellow + "http://%s/help" + ansiReset + "\n" +
	"Found a bug? Open an issue at " + ansiYellow + "https://github.com/frcl/mensa-ka" + ansiReset + "\n"

func respText(host, header, content string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n")
	}
	b.WriteString(content)
	fmt.Fprintf(&b, footerTemplate, host)
	return b.String()
}

func errorText(host string, err error) string {
	content := fmt.Sprintf(ansiRed+"ERROR: %s"+ansiReset+"\n---\n", err.Error())
	return respText(host, "", content)
}

func formatCanteen(canteen mensa.Canteen) string {
	var parts []string
	for _, name := range canteen.Order {
		line := canteen.Lines[name]
		if len(line) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:\n%s", name, formatLine(line)))
	}
	return strings.Join(parts, "\n")
}

func formatLine(line mensa.Line) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	for _, meal := range line {
		t.AppendRow(formatMeal(meal))
		t.AppendSeparator()
	}
	return t.Render() + "\n"
}

func formatMeal(meal mensa.Meal) table.Row {
	desc := meal.Name
	if meal.Note != "" {
		desc = fmt.Sprintf("%s (%s)", meal.Name, meal.Note)
	}

	tags := make([]string, len(meal.Tags))
	for i, tag := range meal.Tags {
		tags[i] = ansiBold + tag + ansiReset
	}

	return table.Row{desc, strings.Join(tags, ","), meal.Price}
}
