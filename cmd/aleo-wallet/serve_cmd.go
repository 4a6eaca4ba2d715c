package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/snehendu098/ghost/wallet/pkg/verifier"
)

func (o *Operator) handleServe(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	srv := verifier.NewServer(o.cfg.Server, o.lg, verifier.NewMetricsWithRegistry(registry))
	return srv.Run(ctx, registry)
}
