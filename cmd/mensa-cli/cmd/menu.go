package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mensa-backend/services/mensa"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu [canteen] [line]",
	Short: "Print today's menu, optionally narrowed to a canteen or line.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		path := "/?format=json"
		if len(args) >= 1 {
			path = "/" + strings.Join(args, "/") + "?format=json"
		}

		res, err := client().R().Get(path)
		if err != nil {
			return err
		}
		if res.StatusCode() >= 300 {
			return fmt.Errorf("server answered with status %d", res.StatusCode())
		}
		if !strings.Contains(res.Header().Get("Content-Type"), "json") {
			// resolver errors come back as plain text
			fmt.Print(res.String())
			return nil
		}

		if len(args) == 2 {
			var line mensa.Line
			err = json.Unmarshal(res.Body(), &line)
			if err != nil {
				return err
			}
			renderLine(args[1], line)
			return nil
		}

		var canteen mensa.Canteen
		err = json.Unmarshal(res.Body(), &canteen)
		if err != nil {
			return err
		}
		for _, name := range canteen.Order {
			if len(canteen.Lines[name]) == 0 {
				continue
			}
			renderLine(name, canteen.Lines[name])
		}
		return nil
	},
}

func renderLine(name string, line mensa.Line) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(name)
	t.AppendHeader(table.Row{"Meal", "Note", "Tags", "Price"})
	for _, meal := range line {
		t.AppendRow(table.Row{
			meal.Name, meal.Note, strings.Join(meal.Tags, ","), meal.Price,
		})
	}
	t.Render()
}
