/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/quantumdir/pkg/api"
	"github.com/carverauto/quantumdir/pkg/config"
	"github.com/carverauto/quantumdir/pkg/directory"
	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/provider"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "/etc/quantumdir/quantumdir.json", "Path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg api.ServerConfig

	cfgLoader := config.NewConfig(nil)
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	mainLogger, err := logger.New(logCfg, "quantumdird")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	client, err := provider.NewClient(cfg.Provider, mainLogger)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Failed to create provider client")
	}

	dir, err := directory.New(cfg.Directory, client, mainLogger)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Failed to create device directory")
	}

	apiServer := api.NewAPIServer(dir, mainLogger, api.WithAPIKey(cfg.APIKey))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		mainLogger.Info().Str("listen_addr", cfg.ListenAddr).Msg("Device directory listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		mainLogger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			mainLogger.Error().Err(err).Msg("Shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}
}
