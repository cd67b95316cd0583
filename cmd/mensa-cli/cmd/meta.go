package cmd

import (
	"encoding/json"
	"fmt"

	"mensa-backend/services/mensa"

	"github.com/spf13/cobra"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show when the server last scraped the menu.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		res, err := client().R().Get("/meta")
		if err != nil {
			return err
		}

		var meta mensa.Meta
		err = json.Unmarshal(res.Body(), &meta)
		if err != nil {
			return err
		}

		if meta.LastUpdate == "" {
			fmt.Println("the server has not scraped the menu yet")
			return nil
		}
		fmt.Printf("last update: %s\n", meta.LastUpdate)
		return nil
	},
}
