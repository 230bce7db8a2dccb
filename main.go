package main

import (
	"flag"
	"log"
	"os"

	"github.com/avstrong/occupancy/internal/app"
	"github.com/avstrong/occupancy/internal/logger"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	l := logger.New(log.Default())

	var exitCode int

	if err := app.Run(l, *envFile); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
