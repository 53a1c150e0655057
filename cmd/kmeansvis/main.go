// Command kmeansvis runs Lloyd's algorithm on a synthetic point cloud and
// writes one PNG frame per phase.
//
// Usage:
//
//	kmeansvis -k 4 -clumpiness 10 -steps 12 -out frames
//	kmeansvis -config run.toml -stop-on-converge
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hupe1980/kmeansvis"
	"github.com/hupe1980/kmeansvis/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "kmeansvis: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := kmeansvis.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	metrics := newPromCollector(reg)

	if cfg.MetricsAddr != "" {
		addr, shutdown, err := serveMetrics(cfg.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer shutdown()
		logger.InfoContext(ctx, "serving metrics", "addr", addr)
	}

	opts := []kmeansvis.Option{
		kmeansvis.WithConfig(cfg.Model()),
		kmeansvis.WithLogger(logger),
		kmeansvis.WithMetricsCollector(metrics),
	}
	if cfg.Seed != 0 {
		opts = append(opts, kmeansvis.WithSeed(cfg.Seed))
	}

	vis, err := kmeansvis.New(cfg.Bounds(), opts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	frames := 0
	if err := writeFrame(cfg, vis, vis.Snapshot(), frames); err != nil {
		return err
	}
	frames++

	steps := 0
	for ; steps < cfg.Steps; steps++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap, err := vis.Step()
		if err != nil {
			return err
		}
		if err := writeFrame(cfg, vis, snap, frames); err != nil {
			return err
		}
		frames++

		if cfg.StopOnConverge && snap.Phase == kmeansvis.AwaitingAssignment && vis.Converged(cfg.Epsilon) {
			steps++
			logger.InfoContext(ctx, "converged", "iteration", snap.Iteration, "shift", vis.LastShift())
			break
		}
	}

	snap := vis.Snapshot()
	fmt.Fprintf(stdout, "wrote %d frames to %s (steps=%d iteration=%d phase=%s)\n",
		frames, cfg.Out, steps, snap.Iteration, snap.Phase)

	return nil
}

func framePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("frame-%03d.png", n))
}

func writeFrame(cfg Config, vis *kmeansvis.Visualizer, snap kmeansvis.Snapshot, n int) error {
	f, err := os.Create(framePath(cfg.Out, n))
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}

	err = render.Render(f, snap, vis.Cells(), cfg.Bounds(), render.WithCaption(vis.ButtonText()))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write frame %d: %w", n, err)
	}
	return nil
}

// serveMetrics exposes reg on /metrics and returns the bound address.
func serveMetrics(addr string, reg *prometheus.Registry) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() { _ = srv.Serve(ln) }()

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
