// Command bzflip scans the bazaar for profitable flips.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fliplab/bzflip/business/crafting"
	"github.com/fliplab/bzflip/business/flip"
	flipDI "github.com/fliplab/bzflip/business/flip/di"
	flipdomain "github.com/fliplab/bzflip/business/flip/domain"
	"github.com/fliplab/bzflip/business/flip/infra/console"
	"github.com/fliplab/bzflip/business/market"
	"github.com/fliplab/bzflip/business/trading"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/metrics"
	"github.com/fliplab/bzflip/internal/monolith"
	"github.com/fliplab/bzflip/pkg/ui"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (ignore errors - it's optional)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	cliMode := flag.Bool("cli", false, "run in CLI mode (no TUI)")
	showVersion := flag.Bool("version", false, "print version and exit")
	strategyFlag := flag.String("strategy", "market", "flip strategy: market, craft or npc")
	topFlag := flag.Int("top", 20, "number of flips to show (0 = all)")
	itemFlag := flag.String("item", "", "evaluate a single item id instead of scanning")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bzflip %s\n", version)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.App.TUIMode = !*cliMode

	strategy, ok := flipdomain.ParseStrategy(*strategyFlag)
	if !ok {
		return fmt.Errorf("unknown strategy %q (want market, craft or npc)", *strategyFlag)
	}

	// In TUI mode logs would corrupt the screen, so discard them.
	logOut := io.Writer(os.Stdout)
	if cfg.App.TUIMode {
		logOut = io.Discard
	}
	log := logger.New(logOut, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)

	log.Info(ctx, "starting bzflip", "version", version, "strategy", string(strategy))

	if cfg.Telemetry.Enabled {
		// Initialize metrics with Prometheus
		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
		)

		// Start Prometheus metrics server in background
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}

	// Create monolith (application container)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		&market.Module{},   // Must be first - provides the snapshot
		&trading.Module{},  // Sessions over the snapshot
		&crafting.Module{}, // Recipe resolution
		&flip.Module{},     // Depends on market, trading and crafting
	}

	// Register all module services
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	scan := func(ctx context.Context) ([]flipdomain.Result, error) {
		if err := mono.StartModules(ctx, modules...); err != nil {
			return nil, fmt.Errorf("failed to start modules: %w", err)
		}

		evaluator := flipDI.GetEvaluator(mono.Services())

		var results []flipdomain.Result
		if *itemFlag != "" {
			result, err := evaluator.Evaluate(ctx, *itemFlag, strategy)
			if err != nil {
				return nil, err
			}
			results = []flipdomain.Result{result}
		} else {
			all, err := evaluator.EvaluateAll(ctx, strategy, *topFlag)
			if err != nil {
				return nil, err
			}
			results = all
		}

		if store := flipDI.GetHistoryStore(mono.Services()); store != nil {
			defer store.Close()
			runID, err := store.RecordRun(ctx, results)
			if err != nil {
				log.Warn(ctx, "failed to record flip history", "error", err)
			} else {
				log.Info(ctx, "flip history recorded", "run_id", runID)
			}
		}

		return results, nil
	}

	if cfg.App.TUIMode {
		return runTUI(ctx, strategy, scan)
	}
	return runCLI(ctx, scan)
}

func runCLI(ctx context.Context, scan func(context.Context) ([]flipdomain.Result, error)) error {
	results, err := scan(ctx)
	if err != nil {
		return err
	}
	return console.NewReporter(os.Stdout).Report(results)
}

func runTUI(ctx context.Context, strategy flipdomain.Strategy, scan func(context.Context) ([]flipdomain.Result, error)) error {
	// Channel to receive the StartScanMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartScan = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// Create and start the TUI program immediately (shows welcome screen)
	p := tea.NewProgram(ui.New(), tea.WithAltScreen())
	ui.Program = p

	// Run the scan in background once the welcome screen completes
	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		ui.Send(ui.StatusMsg{Message: "fetching feeds"})

		results, err := scan(ctx)
		if err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}

		ui.Send(ui.ResultsMsg{Strategy: strategy, Results: results})
		errCh <- nil
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
