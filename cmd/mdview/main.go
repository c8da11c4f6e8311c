package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rgonek/md-view/logging"
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "mdview",
		HelpName: "mdview",
		Usage:    "Render markdown into HTML views that know where every element came from",
		Flags:    logging.Flags,
		Before: func(cc *cli.Context) error {
			logging.Setup()
			return nil
		},
		Commands: []*cli.Command{
			renderCommand,
			clickCommand,
			componentsCommand,
			themesCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
