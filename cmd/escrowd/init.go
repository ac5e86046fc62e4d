package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/crypto"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x/cash"
	"github.com/iov-one/timedescrow/x/escrow"
	"github.com/spf13/cobra"
)

const (
	flagChainID   = "chain_id"
	flagCoins     = "coins"
	flagMinAmount = "min_amount"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [address]",
		Short: "Write the configuration and the genesis app state",
		Long: `Write the default configuration and set the app_state of the genesis
file. All coins are issued to given address. When no address is given, a new
key is generated and printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home := homeDir(cmd)
			if err := WriteDefaultConfig(home); err != nil {
				return err
			}

			var addr timedescrow.Address
			if len(args) == 1 {
				a, err := timedescrow.ParseAddress(args[0])
				if err != nil {
					return err
				}
				addr = a
			} else {
				key := crypto.GenPrivKeyEd25519()
				addr = key.PublicKey().Address()
				fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\n", hex.EncodeToString(key.Ed25519))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\n", addr)

			chainID, _ := cmd.Flags().GetString(flagChainID)
			coins, _ := cmd.Flags().GetUint64(flagCoins)
			minAmount, _ := cmd.Flags().GetUint64(flagMinAmount)
			state := AppState{
				Cash:   []cash.GenesisAccount{{Address: addr, Coins: coins}},
				Escrow: &escrow.Config{MinAmount: minAmount},
			}
			return WriteGenesis(genesisFile(home), chainID, state)
		},
	}
	cmd.Flags().String(flagChainID, "escrow-local", "chain id used when a new genesis file is created")
	cmd.Flags().Uint64(flagCoins, 1000000, "coins issued to the address")
	cmd.Flags().Uint64(flagMinAmount, 0, "lowest amount an escrow can be funded with")
	return cmd
}

// AppState is the application part of the genesis file.
type AppState struct {
	Cash   []cash.GenesisAccount `json:"cash"`
	Escrow *escrow.Config        `json:"escrow,omitempty"`
}

func genesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// WriteGenesis sets the app_state of the genesis file at path. Other fields
// of an existing file are preserved. A missing file is created with given
// chain id.
func WriteGenesis(path, chainID string, state AppState) error {
	doc := make(map[string]json.RawMessage)
	switch raw, err := ioutil.ReadFile(path); {
	case err == nil:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot parse genesis file: %s", err)
		}
	case os.IsNotExist(err):
		if !timedescrow.IsValidChainID(chainID) {
			return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
		}
		id, err := json.Marshal(chainID)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		doc["chain_id"] = id
	default:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	appState, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	doc["app_state"] = appState

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := ioutil.WriteFile(path, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
