package cmd

import (
	"log"
	"os"

	"github.com/bz888/policyask/internal/config"
	"github.com/bz888/policyask/internal/form"
	"github.com/bz888/policyask/internal/logger"
	"github.com/bz888/policyask/internal/search"
	"github.com/bz888/policyask/internal/ui"
)

func Execute() {
	config.Init()

	if config.Ask != "" {
		if err := logger.InitLogger(config.Dev, config.LogPath, nil); err != nil {
			log.Fatal(err)
		}
		code := ask(form.New(search.NewClient()), config.Ask, os.Stdout, os.Stderr)
		logger.Close()
		os.Exit(code)
	}

	ui.Init()
	debugConsole, err := ui.GetDebugConsole()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.InitLogger(config.Dev, config.LogPath, debugConsole); err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	if err := ui.Run(form.New(search.NewClient())); err != nil {
		log.Println("ui stopped:", err)
	}
}
