package main

import (
	"github.com/smn2gnt/MCP-Salesforce/pkg/cli"
)

// version is set at build time via -ldflags.
var version string

func main() {
	cli.Execute(version)
}
