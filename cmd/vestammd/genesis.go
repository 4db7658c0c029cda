package main

import (
	"encoding/json"
	"fmt"
	"os"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vestamm/vestamm/pkg/ledger"
	"github.com/vestamm/vestamm/x/vestamm/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

func newGenesisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Genesis state tooling",
	}
	cmd.AddCommand(newValidateGenesisCmd(), newExportGenesisCmd(v))
	return cmd
}

func newValidateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var gs types.GenesisState
			if err := json.Unmarshal(bz, &gs); err != nil {
				return fmt.Errorf("parse genesis: %w", err)
			}
			if err := gs.Validate(); err != nil {
				return fmt.Errorf("invalid genesis: %w", err)
			}
			cmd.Printf("%s is a valid genesis state (%d pools, %d stakes)\n",
				args[0], len(gs.Pools), len(gs.Stakes))
			return nil
		},
	}
}

func newExportGenesisCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current store as a genesis state to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			backend := dbm.BackendType(v.GetString(flagDBBackend))
			db, err := dbm.NewDB("vestamm", backend, v.GetString(flagHome))
			if err != nil {
				return err
			}
			defer db.Close()

			k := keeper.NewKeeper(db, ledger.New(db), systemClock{}, nil, logger)
			gs, err := k.ExportGenesis()
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(gs, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(bz))
			return nil
		},
	}
	cmd.Flags().String(flagDBBackend, string(dbm.GoLevelDBBackend), "db backend (goleveldb|memdb|pebbledb)")
	return cmd
}
