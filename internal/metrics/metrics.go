// Copyright 2026 The RepoScan Authors
// SPDX-License-Identifier: MIT

// Package metrics exposes a Prometheus /metrics endpoint for the reposcan
// serve long-running mode.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reposcan_scans_total",
		Help: "Total number of scans run, by outcome.",
	}, []string{"outcome"})

	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reposcan_scan_duration_seconds",
		Help:    "Duration of a full repository scan.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	MatchesFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reposcan_matches_found_total",
		Help: "Total number of rule matches found, by rule name.",
	}, []string{"rule"})

	CommitsWalked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reposcan_commits_walked_total",
		Help: "Total number of commits walked across all scans.",
	}, []string{})

	BlobsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reposcan_blobs_scanned_total",
		Help: "Total number of file blobs scanned across all scans.",
	}, []string{})
)

// Serve starts the Prometheus metrics server on addr. It blocks until ctx
// is cancelled or the server fails, logging the start and any failure via
// logger; it never returns an error to the caller since metrics serving is
// a best-effort side channel alongside the MCP server, not the primary
// workload.
func Serve(ctx context.Context, addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info("metrics server starting", "listen", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", "error", err)
	}
}
