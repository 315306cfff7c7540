package main

import (
	"fmt"
	"os"

	"github.com/tiemhang/tiemhang/cmd/tiemhang/cli"
)

func main() {
	app, err := cli.NewApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tiemhang:", err)
		os.Exit(1)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "tiemhang:", err)
		os.Exit(1)
	}
}
