package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vestamm/vestamm/pkg/ledger"
	"github.com/vestamm/vestamm/x/vestamm/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

// systemClock supplies wall-clock time to the keeper in production.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// logEmitter writes every engine event to the structured log.
type logEmitter struct {
	logger log.Logger
}

func (e logEmitter) Emit(ev types.Event) {
	e.logger.Debug("event", "type", ev.Type())
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine with a persistent store and metrics endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}

			home := v.GetString(flagHome)
			if err := os.MkdirAll(home, 0o750); err != nil {
				return err
			}
			backend := dbm.BackendType(v.GetString(flagDBBackend))
			db, err := dbm.NewDB("vestamm", backend, home)
			if err != nil {
				return err
			}
			defer db.Close()

			bank := ledger.New(db)
			k := keeper.NewKeeper(db, bank, systemClock{}, logEmitter{logger: logger}, logger)

			if err := k.CheckInvariants(); err != nil {
				logger.Error("state corrupt at startup", "err", err)
				return err
			}

			metricsSrv := startMetricsServer(logger, v.GetInt(flagMetricsPort))
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}()

			interval := v.GetDuration("invariant-interval")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			logger.Info("engine running", "home", home, "backend", string(backend))
			for {
				select {
				case <-ticker.C:
					if err := k.CheckInvariants(); err != nil {
						logger.Error("invariant sweep failed", "err", err)
					}
				case sig := <-sigCh:
					logger.Info("shutting down", "signal", sig.String())
					return nil
				}
			}
		},
	}

	cmd.Flags().String(flagDBBackend, string(dbm.GoLevelDBBackend), "db backend (goleveldb|memdb|pebbledb)")
	cmd.Flags().Int(flagMetricsPort, 26660, "prometheus metrics port")
	cmd.Flags().Duration("invariant-interval", time.Minute, "interval between invariant sweeps")
	return cmd
}
