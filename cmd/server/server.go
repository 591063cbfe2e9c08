package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chemezy-server/internal/config"
	"chemezy-server/internal/infrastructure/crontab"
	"chemezy-server/internal/infrastructure/logger"
	"chemezy-server/internal/infrastructure/observability"
	"chemezy-server/internal/interfaces/httpserver"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "net/http/pprof"
)

type Application struct {
	HTTPServer *httpserver.HTTPServer
	Crontab    *crontab.Crontab
}

func init() {
	logger.GetLogger()
	config.Load()
}

func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	cfg := config.GetGlobal()

	var eg errgroup.Group
	eg.Go(func() error {
		err := http.ListenAndServe("0.0.0.0:6060", nil)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), mux)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.Crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.HTTPServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	dataInitializer, err := CreateDataInitializer()
	if err != nil {
		log.Fatal().Err(err).Msg("create data initializer")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := dataInitializer.Install(ctx); err != nil {
		log.Fatal().Err(err).Msg("install data")
	}

	application.Start()
}
