// Package main is the single-binary entrypoint for credify.
// One binary: the CLI for logging activities and the API server.
package main

import "github.com/credify-app/credify/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
