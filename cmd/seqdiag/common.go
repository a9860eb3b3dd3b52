// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kraklabs/seqdiag/internal/config"
	"github.com/kraklabs/seqdiag/internal/errors"
	"github.com/kraklabs/seqdiag/pkg/sequence"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// loadConfig loads the configuration file and converts failures into
// UserErrors.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, nil
	case stderrors.Is(err, os.ErrNotExist):
		return nil, errors.NewConfigError(
			"Cannot load configuration",
			fmt.Sprintf("%s does not exist", path),
			"Create "+defaultConfigPath+" or pass --config <path>",
			err,
		)
	case stderrors.Is(err, os.ErrPermission):
		return nil, errors.NewPermissionError(
			"Cannot load configuration",
			fmt.Sprintf("Permission denied reading %s", path),
			"Check the file permissions",
			err,
		)
	default:
		return nil, errors.NewConfigError(
			"Invalid configuration",
			err.Error(),
			"Fix the reported field; see 'seqdiag list --help' for the file layout",
			err,
		)
	}
}

// selectDiagrams returns the named diagrams, or all of them in name order.
func selectDiagrams(cfg *config.Config, names []string) ([]*config.Diagram, error) {
	if len(names) == 0 {
		names = cfg.Names()
	}
	out := make([]*config.Diagram, 0, len(names))
	for _, name := range names {
		d, ok := cfg.Diagram(name)
		if !ok {
			return nil, errors.NewInputError(
				fmt.Sprintf("Unknown diagram '%s'", name),
				"The configuration defines: "+strings.Join(cfg.Names(), ", "),
				"Run 'seqdiag list' to see the configured diagrams",
			)
		}
		out = append(out, d)
	}
	return out, nil
}

// generateError converts a failure while building diagram into a UserError.
func generateError(diagram string, err error) error {
	var ue *errors.UserError
	switch {
	case stderrors.As(err, &ue):
		return ue
	case stderrors.Is(err, context.Canceled):
		return errors.NewInputError(
			fmt.Sprintf("Generating '%s' was interrupted", diagram),
			"", "",
		)
	case stderrors.Is(err, os.ErrNotExist):
		return errors.NewSourceModelError(
			fmt.Sprintf("Cannot build '%s'", diagram),
			err.Error(),
			"Check translation_units in the configuration, or regenerate the dumps",
			err,
		)
	case stderrors.Is(err, sourcemodel.ErrUnknownFormat):
		return errors.NewSourceModelError(
			fmt.Sprintf("Cannot build '%s'", diagram),
			err.Error(),
			"Translation unit dumps must end in .yaml, .yml, .json or .msgpack",
			err,
		)
	case stderrors.Is(err, sequence.ErrIdentityCollision), stderrors.Is(err, sequence.ErrFinalized):
		return errors.NewInternalError(
			fmt.Sprintf("Cannot build '%s'", diagram),
			err.Error(),
			"This is a bug. Please report it with the translation unit dump attached",
			err,
		)
	default:
		return errors.NewSourceModelError(
			fmt.Sprintf("Cannot build '%s'", diagram),
			err.Error(),
			"Check that the dump was produced by a compatible front-end",
			err,
		)
	}
}

// newLogger creates the text logger used by commands. Logs go to w so
// that stdout stays free for diagrams and JSON.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// startMetrics serves Prometheus metrics on addr until the process exits.
func startMetrics(addr string, logger *slog.Logger) {
	if addr == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux}
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}
