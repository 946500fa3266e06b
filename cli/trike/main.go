// Package main is the trike CLI command itself.
package main

import (
	"log"
	"os"

	trikecli "go.viam.com/trike/cli"
)

func main() {
	app := trikecli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
