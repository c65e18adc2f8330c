package main

import (
	"fmt"
	"os"

	"timecard-report/internal/cli"
	"timecard-report/internal/services"

	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Formatters: []services.ReportFormatter{services.NewExcelService(), services.NewPDFService()},
		// Colors only when stdout is a terminal
		Styled: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
