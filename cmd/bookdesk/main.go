package main

import "github.com/sternenweber/bookdesk/internal/app"

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app.SetVersion(version)
	app.Execute()
}
