package main

import (
	"os"

	"github.com/breezeflow/breeze/app"
	"github.com/breezeflow/breeze/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(err)
	}
}
