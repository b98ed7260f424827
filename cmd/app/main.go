package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iss-telemetry-bot/internal/application"
	"iss-telemetry-bot/internal/config"
	"iss-telemetry-bot/internal/domain/ports/adapter"
	"iss-telemetry-bot/internal/infra/adapters/opennotify"
	tele "iss-telemetry-bot/internal/infra/adapters/telegram"
	"iss-telemetry-bot/internal/infra/api"
	"iss-telemetry-bot/internal/infra/logging"
	"iss-telemetry-bot/internal/infra/runner"
	"iss-telemetry-bot/internal/usecase"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	if err := run(*cfgPath, *devMode); err != nil {
		fmt.Fprintf(os.Stderr, "iss-telemetry-bot: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, dev bool) error {
	cfg, err := config.LoadConfig(cfgPath, dev)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// ---- Logging ----
	logger, logFile, err := logging.New(cfg.Log, cfg.Runtime.Dev)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logFile.Close()
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Outbound HTTP (shared proxy) ----
	transport, err := newTransport(cfg.Bot.Proxy)
	if err != nil {
		return err
	}
	if cfg.Bot.Proxy != "" {
		logger.Info().Str("proxy", redactProxy(cfg.Bot.Proxy)).Msg("routing outbound HTTP through proxy")
	}
	tz, err := cfg.Telemetry.Location()
	if err != nil {
		return fmt.Errorf("time zone: %w", err)
	}

	// ---- Telegram ----
	// The client deadline must outlive one long poll.
	tgClient := &http.Client{
		Transport: transport,
		Timeout:   time.Duration(cfg.Bot.PollTimeout)*time.Second + 10*time.Second,
	}
	bot, err := tele.NewBot(cfg.Bot, tgClient, "", logger)
	if err != nil {
		logger.Error().Err(err).Msg("telegram unreachable at startup")
		return fmt.Errorf("telegram: %w", err)
	}
	var sender adapter.ChatSender = bot
	if cfg.Bot.DryRun {
		logger.Warn().Msg("bot.dry_run is set; replies are logged, not sent")
		sender = tele.NewNoopSender(logger)
	}

	// ---- Telemetry ----
	telemetryClient := opennotify.NewClient(
		cfg.Telemetry.BaseURL,
		&http.Client{Transport: transport, Timeout: cfg.Telemetry.Timeout},
		cfg.Telemetry.Timeout,
		logger,
	)
	telemetryUC := usecase.NewTelemetryUseCase(telemetryClient, sender, tz, logger)

	// ---- Dispatcher ----
	dispatcher, err := application.NewDispatcher(cfg.Bot, sender, telemetryUC, logger)
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}
	poller := tele.NewPoller(bot, dispatcher, cfg.Bot, logger)

	// ---- Services ----
	group := runner.Group{poller}
	if cfg.Admin.Port > 0 {
		group = append(group, api.NewServer(cfg.Admin.Port, poller, logger))
	}

	logger.Info().
		Str("bot", bot.Username()).
		Str("menu", cfg.Bot.Menu).
		Bool("pass_times", cfg.Bot.PassTimesEnabled()).
		Str("telemetry", cfg.Telemetry.BaseURL).
		Msg("iss telemetry bot starting")

	// ---- Graceful shutdown ----
	if err := group.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("service failed")
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

func newTransport(proxy string) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if proxy == "" {
		return t, nil
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}
	t.Proxy = http.ProxyURL(u)
	return t, nil
}

// redactProxy hides proxy credentials in logs.
func redactProxy(proxy string) string {
	u, err := url.Parse(proxy)
	if err != nil {
		return "invalid"
	}
	return u.Redacted()
}
