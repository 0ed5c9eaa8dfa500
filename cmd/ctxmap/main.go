package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ctxmap/internal/app"
	"ctxmap/internal/client"
	"ctxmap/internal/config"
	"ctxmap/internal/contextmap"
	"ctxmap/internal/logging"
)

const usageText = `ctxmap renders an opencode session as a treemap of context usage.

Usage:
  ctxmap [flags] [session-id]

Without a session id the picker lists every session on the server.

Flags:
  --server URL      opencode server base url (default http://127.0.0.1:4096)
  --timeout SECS    request timeout in seconds
  --grouping MODE   part grouping inside a message: type or flat
  --control MODE    control part sizing: zero or serialized
  -h, --help        show help

Environment:
  CTXMAP_SERVER_URL    overrides the configured server url
  CTXMAP_SERVER_TOKEN  basic auth password for the server

Config:
  ~/.ctxmap/config.toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			printUsage()
			return
		}
	}
	_ = godotenv.Load()
	exitOnErr("ctxmap", run(args))
}

func run(args []string) error {
	fs := flag.NewFlagSet("ctxmap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = printUsage
	server := fs.String("server", "", "opencode server base url")
	timeout := fs.Int("timeout", 0, "request timeout in seconds")
	grouping := fs.String("grouping", "", "part grouping inside a message: type or flat")
	control := fs.String("control", "", "control part sizing: zero or serialized")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n\n", fs.Arg(1))
		printUsage()
		os.Exit(2)
	}
	sessionID := fs.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseURL := cfg.ServerBaseURL()
	if env := os.Getenv("CTXMAP_SERVER_URL"); env != "" {
		baseURL = env
	}
	if *server != "" {
		baseURL = *server
	}
	token := cfg.ServerToken()
	if env := os.Getenv("CTXMAP_SERVER_TOKEN"); env != "" {
		token = env
	}
	fetchTimeout := cfg.ServerTimeout()
	if *timeout > 0 {
		fetchTimeout = time.Duration(*timeout) * time.Second
	}
	groupingMode := cfg.TreeGrouping()
	if *grouping != "" {
		groupingMode = *grouping
	}
	controlMode := cfg.TreeControlParts()
	if *control != "" {
		controlMode = *control
	}
	switch groupingMode {
	case "type", "flat":
	default:
		return fmt.Errorf("invalid grouping %q (want type or flat)", groupingMode)
	}
	switch controlMode {
	case "zero", "serialized":
	default:
		return fmt.Errorf("invalid control sizing %q (want zero or serialized)", controlMode)
	}

	logger := logging.Nop()
	if logPath, err := config.UILogPath(); err == nil {
		if fileLogger, closer, err := logging.NewFileLogger(logPath, logging.ParseLevel(cfg.LogLevel())); err == nil {
			logger = fileLogger
			defer closer.Close()
		}
	}

	apiClient, err := client.New(client.Config{
		BaseURL:  baseURL,
		Username: cfg.ServerUsername(),
		Token:    token,
		Timeout:  fetchTimeout,
	})
	if err != nil {
		return err
	}
	defer apiClient.Close()

	return app.Run(apiClient, app.Options{
		SessionID:    sessionID,
		Grouping:     contextmap.Grouping(groupingMode),
		Control:      contextmap.ControlSizing(controlMode),
		FetchTimeout: fetchTimeout,
		Logger:       logger,
	})
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
