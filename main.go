package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ai-chat-client/chat"
	"ai-chat-client/db"
	"ai-chat-client/ui"
	"ai-chat-client/utils"
)

var (
	version = "0.1.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("AI Chat Client v%s\n", version)
		os.Exit(0)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.SetConsole(false)

	logger.Info("Starting AI Chat Client v%s", version)

	// Load or create default configuration
	var config *utils.Config
	actualConfigPath := *configPath
	if actualConfigPath == "" {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
		logger.Info("Using config file: %s", actualConfigPath)
	}
	config, err = utils.LoadConfig(actualConfigPath)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Initialize the durable key-value store
	store, err := db.Open(config.Data.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("Storage initialized: %s", config.Data.DBPath)

	// Wire the stores, leaves first
	gateway := chat.NewGateway(store, logger)
	files := chat.NewFileStore(gateway)
	bots := chat.NewBotRegistry(gateway, files)
	conversations := chat.NewConversationStore(gateway, bots)

	responder := chat.NewSimulatedResponder(
		time.Duration(config.Chat.ResponseDelayMS)*time.Millisecond,
		time.Duration(config.Chat.BotResponseDelayMS)*time.Millisecond,
	)

	orch := chat.NewOrchestrator(conversations, bots, files, gateway, responder, chat.DataURLReader{}, logger)
	orch.MaxFileSize = config.Chat.MaxFileSizeBytes

	// Resume where the user left off: most recent conversation, if any
	if all := conversations.All(); len(all) > 0 {
		conversations.SetCurrent(all[0].ID)
	}

	console := ui.NewConsole(orch, logger, os.Stdin, os.Stdout)

	logger.Info("Application started")
	if err := console.Run(context.Background()); err != nil {
		logger.Error("Console error: %v", err)
	}
	orch.Wait()
	logger.Info("Application stopped")
}
