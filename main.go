/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/logutil"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/datasources"
	"github.com/google/tabula/demo"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	dump := flag.String("dump", "", "print the named table as ASCII and exit")
	flag.Parse()

	if err := run(*configPath, *addr, *dump); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, addr, dump string) error {
	cfg := config.Default()
	cfg.Demo = true
	baseDir := "."
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		baseDir = filepath.Dir(configPath)
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger, err := logutil.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dataModel := models.NewDataModel()
	if cfg.Demo {
		if err := demo.Register(dataModel, logger); err != nil {
			return err
		}
	}
	sources := datasources.NewManager(logger)
	sources.SetBaseDir(baseDir)
	if err := sources.AddSources(cfg); err != nil {
		return err
	}
	if err := sources.LoadAll(dataModel); err != nil {
		return err
	}
	if err := models.AddSystemTables(dataModel); err != nil {
		return err
	}

	if dump != "" {
		return dataModel.WithTable(dump, func(t *tables.Table) error {
			_, err := fmt.Print(t.ToAscii())
			return err
		})
	}

	s, err := server.NewServer(dataModel,
		server.WithTitle(cfg.Title, cfg.Subtitle),
		server.WithDefaultLimit(cfg.Defaults.Limit),
		server.WithLogger(logger))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting", zap.String("addr", "http://"+cfg.Addr), zap.Strings("tables", dataModel.TableNames()))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
