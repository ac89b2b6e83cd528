package main

import (
	"jamlytics-backend/cmd/jamlytics-cli/cmd"
	"jamlytics-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	cmd.Execute()
}
