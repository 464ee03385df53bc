package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"azurepricing/bot"
	"azurepricing/impl/core"
	"azurepricing/internal/cache"
	"azurepricing/internal/config"
	"azurepricing/internal/http-server/api"
	"azurepricing/internal/lib/logger"
	"azurepricing/internal/lib/sl"
	"azurepricing/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Telegram.Enabled {
		minLevel, ok := bot.ParseLevel(conf.Telegram.MinLevel)
		if !ok {
			lg.Warn("unknown telegram min_level, using info", slog.String("min_level", conf.Telegram.MinLevel))
		}
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, minLevel, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, minLevel)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
				sl.Secret("api_key", conf.Telegram.ApiKey),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(ctx); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	lg.Info("starting azure pricing api", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg, conf)

	prices, err := services.NewAzurePrices(conf, lg)
	if err != nil {
		lg.Error("azure prices client", sl.Err(err))
		os.Exit(1)
	}
	handler.SetPrices(prices)
	lg.With(
		slog.String("url", conf.Azure.BaseUrl),
		slog.String("api_version", conf.Azure.ApiVersion),
	).Info("azure prices client initialized")

	priceCache, err := cache.New(ctx, conf, lg)
	if err != nil {
		lg.Error("price cache unavailable, continuing without cache", sl.Err(err))
	} else {
		handler.SetCache(priceCache)
		defer func() {
			if err := priceCache.Close(); err != nil {
				lg.Warn("closing price cache", sl.Err(err))
			}
		}()
		lg.With(
			slog.String("backend", priceCache.Stats().Backend),
			slog.Duration("ttl", conf.Cache.TTL),
		).Info("price cache initialized")
	}

	server := api.New(conf, lg, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil {
			lg.Error("api server", sl.Err(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		lg.Error("api server shutdown", sl.Err(err))
	}

	lg.Info("service stopped")
}
