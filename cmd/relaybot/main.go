package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"relaybot/internal/audit"
	"relaybot/internal/auth"
	"relaybot/internal/config"
	"relaybot/internal/dispatch"
	"relaybot/internal/gateway"
	"relaybot/internal/listener"
	"relaybot/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "relaybot",
		Short: "relaybot: HTTP relay for Telegram channels and groups",
		Long:  "relaybot bridges an HTTP API to Telegram: send, edit, and delete messages in channels and groups, with a command listener for status queries.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (default: ~/.relaybot/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists: %s", cfgPath)
			}
			if err := config.Save(cfgPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and the command listener",
		Long:  "Starts the HTTP API and the Telegram command listener. Press Ctrl+C to stop.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Token and API key usually arrive via ${VAR} expansion; a .env file next
	// to the binary is honored when present.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file")
	}

	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = setupLogger(cfg.General)
	if err != nil {
		return err
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is not configured")
	}
	if cfg.API.Key == "" {
		logger.Warn("api.key is empty; every API request will be rejected")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := gateway.Connect(cfg.Telegram.Token, logger)
	if err != nil {
		return err
	}

	var auditLog audit.Log
	if cfg.Audit.DBPath != "" {
		sqlLog, err := audit.NewSQLiteLog(cfg.Audit.DBPath, logger)
		if err != nil {
			return fmt.Errorf("audit store: %w", err)
		}
		defer sqlLog.Close()
		auditLog = sqlLog
		logger.Info("audit log persisted", "path", cfg.Audit.DBPath)
	} else {
		auditLog = audit.NewMemoryLog(cfg.Audit.MaxEntries)
	}

	gw := gateway.NewTelegram(bot)
	engine := dispatch.NewEngine(gw, auditLog, logger)
	gate := auth.NewGate(cfg.API.Key)
	admins := listener.NewAdminSet(cfg.Telegram.Admins)

	lst := listener.New(bot, auditLog, admins, logger)
	go func() {
		if err := lst.Start(ctx); err != nil {
			logger.Error("command listener error", "err", err)
		}
	}()

	srv := server.New(server.Config{
		Host:           cfg.API.Host,
		Port:           cfg.API.Port,
		Version:        version,
		MetricsEnabled: cfg.Metrics.Enabled,
	}, gate, engine, gw, auditLog, logger)

	return srv.Start(ctx)
}

// setupLogger builds the process logger from config: level, stderr, and an
// optional log file.
func setupLogger(cfg config.GeneralConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check config and bot connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				logger.Info("config", "path", cfgPath, "loaded", false)
				return err
			}
			logger.Info("config", "path", cfgPath, "loaded", true)

			if cfg.Telegram.Token == "" {
				logger.Warn("telegram token not configured")
				return nil
			}
			bot, err := gateway.Connect(cfg.Telegram.Token, logger)
			if err != nil {
				logger.Error("telegram", "connected", false, "err", err)
				return err
			}
			logger.Info("telegram", "connected", true, "username", bot.Self.UserName)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List config values (secrets redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			data, _ := json.MarshalIndent(config.Sanitize(cfg), "", "  ")
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(resolveConfigPath())
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("relaybot " + version)
		},
	}
}
