package main

import "kuber_backend/internal/cli"

// -ldflags "-X main.buildVersion=... -X main.buildDate=..." で上書きします。
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
