// cmd/calorie-cli/main.go
package main

import (
	"os"

	"calorie-workers/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
