package main

import (
	"mensa-backend/cmd/mensa-cli/cmd"
	"mensa-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	cmd.Execute()
}
