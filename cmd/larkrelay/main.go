package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hyzhou/larkrelay/internal/config"
	"github.com/hyzhou/larkrelay/internal/dispatch"
	"github.com/hyzhou/larkrelay/internal/event"
	"github.com/hyzhou/larkrelay/internal/lark"
	"github.com/hyzhou/larkrelay/internal/log"
	"github.com/hyzhou/larkrelay/internal/webhook"
)

const version = "0.1.0"

// drainTimeout bounds how long shutdown waits for in-flight
// notifications.
const drainTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "start":
		os.Exit(runStart(args))
	case "version":
		fmt.Printf("larkrelay version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	listen := fs.String("listen", "", "listen address override, e.g. :8000")
	fs.Parse(args)

	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("main")

	if cfg.GitHubSecret == "" {
		logger.Warn("no GitHub secret configured, webhook requests will be rejected")
	}
	if cfg.LarkWebhookURL == "" {
		logger.Warn("no Lark webhook URL configured, webhook requests will be rejected")
	}

	notifier := lark.New(cfg.LarkWebhookURL, cfg.LarkSignSecret)
	dispatcher := dispatch.New(notifier, dispatch.DefaultWorkers, dispatch.DefaultQueueSize)
	router := event.NewRouter(cfg.UserMapping)
	server := webhook.New(cfg, router, dispatcher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher.Start()

	err = server.Start(ctx)
	// In-flight notifications get a chance to drain before exit.
	dispatcher.Stop(drainTimeout)

	if err != nil && err != context.Canceled {
		logger.Error("server exited", "error", err)
		return 1
	}

	logger.Info("shutdown complete")
	return 0
}

func printUsage() {
	fmt.Print(`larkrelay - GitHub webhook to Lark notification relay

Usage:
  larkrelay <command> [flags]

Commands:
  start     Start the relay service in foreground
  version   Show version
  help      Show this help

Start flags:
  --config  Path to YAML config file (optional; environment overrides it)
  --listen  Listen address override (e.g. :8000)

Environment:
  RELAY_LISTEN             Listen address (default :8000)
  RELAY_LOG_LEVEL          DEBUG | INFO | WARN | ERROR
  RELAY_GITHUB_SECRET      Inbound webhook shared secret
  RELAY_LARK_WEBHOOK_URL   Downstream Lark bot webhook URL
  RELAY_LARK_SIGN_SECRET   Outbound signing secret (optional)
  RELAY_REPO_ALLOWLIST     Comma-separated repo full names (optional)
  RELAY_USER_MAPPING       JSON login-to-recipient mapping (optional)
`)
}
