package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/minerace/business/core/scenario"
	"github.com/ardanlabs/minerace/foundation/blockchain/database"
	"github.com/ardanlabs/minerace/foundation/blockchain/genesis"
	"github.com/ardanlabs/minerace/foundation/blockchain/state"
	"github.com/ardanlabs/minerace/foundation/blockchain/wallet"
	"github.com/ardanlabs/minerace/foundation/blockchain/worker"
	"github.com/ardanlabs/minerace/foundation/events"
	"github.com/ardanlabs/minerace/foundation/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("MINER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		State struct {
			GenesisPath string   `conf:"default:zblock/genesis.json"`
			Accounts    []string `conf:"default:alice;bob;carol"`
		}
		Load struct {
			Interval time.Duration `conf:"default:2s"`
			MaxValue string        `conf:"default:2.5"`
			Scenario string        `conf:"help:optional scenario file to run before the load starts"`
		}
		Trace           bool          `conf:"default:false"`
		ShutdownTimeout time.Duration `conf:"default:20s"`
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "mining race ledger",
		},
	}

	const prefix = "MINER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	maxValue, err := decimal.NewFromString(cfg.Load.MaxValue)
	if err != nil {
		return fmt.Errorf("parsing load max value: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Genesis Support

	gen, err := genesis.Load(cfg.State.GenesisPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading genesis: %w", err)
		}
		log.Infow("startup", "status", "genesis file not found, using defaults", "path", cfg.State.GenesisPath)
		gen = genesis.Default()
	}

	// =========================================================================
	// Ledger Support

	// Every event is logged and forwarded to any in-process subscriber.
	traceID := uuid.NewString()
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", traceID)
		evts.Send("%s", s)
	}

	if cfg.Trace {
		ch := evts.Acquire(traceID)
		go func() {
			for e := range ch {
				fmt.Println(e)
			}
		}()
	}

	st, err := state.New(state.Config{
		Genesis:   gen,
		EvHandler: ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	wallets := make([]*wallet.Wallet, 0, len(cfg.State.Accounts))
	for _, name := range cfg.State.Accounts {
		w, err := st.CreateAccount(database.AccountID(name))
		if err != nil {
			return fmt.Errorf("creating account[%s]: %w", name, err)
		}
		wallets = append(wallets, w)
	}

	if cfg.Load.Scenario != "" {
		sc, err := scenario.Load(cfg.Load.Scenario)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}

		report, err := scenario.Run(context.Background(), st, sc)
		if err != nil {
			return fmt.Errorf("running scenario: %w", err)
		}
		log.Infow("scenario", "name", report.Name, "steps", len(report.Results))

		for _, id := range report.Wallets {
			if w, err := st.RetrieveWallet(id); err == nil {
				wallets = append(wallets, w)
			}
		}
	}

	// The worker mines in the background and reports every settled round.
	worker.Run(st, ev, func(round state.Round) {
		log.Infow("round",
			"traceid", traceID,
			"round", round.ID,
			"winner", round.Winner,
			"nonce", round.Nonce,
			"hash", round.Hash,
			"trans", len(round.Trans),
			"attempts", round.Attempts,
			"duration", round.Duration,
			"collision", round.Collision,
			"supply", st.QueryTotalSupply(),
		)
	})

	// =========================================================================
	// Start Load Generator

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	loadErrors := make(chan error, 1)

	go func() {
		log.Infow("startup", "status", "load generator started", "interval", cfg.Load.Interval)
		loadErrors <- generateLoad(ctx, cfg.Load.Interval, maxValue, wallets)
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-loadErrors:
		cancel()
		return fmt.Errorf("load error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		cancel()

		select {
		case <-loadErrors:
		case <-time.After(cfg.ShutdownTimeout):
			return errors.New("could not stop load generator gracefully")
		}

		// Release the trace subscriber once nothing else will be sent.
		defer evts.Shutdown()
	}

	return nil
}

// generateLoad submits a random transfer between two random wallets on
// every tick until the context is cancelled.
func generateLoad(ctx context.Context, interval time.Duration, maxValue decimal.Decimal, wallets []*wallet.Wallet) error {
	if len(wallets) < 2 {
		return errors.New("at least two accounts are required to generate load")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			from := wallets[rand.IntN(len(wallets))]
			to := wallets[rand.IntN(len(wallets))]
			if from == to {
				continue
			}

			value := maxValue.Mul(decimal.NewFromFloat(rand.Float64())).Round(2)
			if !value.IsPositive() {
				continue
			}

			from.Transfer(to.ID(), value)

		case <-ctx.Done():
			return nil
		}
	}
}
