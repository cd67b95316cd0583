package cmd

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var hostFlag string

var rootCmd = &cobra.Command{
	Use:   "mensa-cli",
	Short: "Query a running mensa-server from the terminal.",
}

func client() *resty.Client {
	c := resty.New()
	c.SetBaseURL(hostFlag)
	c.SetTimeout(time.Second * 10)
	return c
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&hostFlag, "host", "http://localhost:8000",
		"base url of the mensa-server to query",
	)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(metaCmd)
}
