package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/timedescrow/crypto"
	"github.com/iov-one/timedescrow/errors"
	"github.com/spf13/cobra"
)

const flagHRP = "hrp"

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate a new ed25519 key and print its address",
		RunE: func(cmd *cobra.Command, args []string) error {
			hrp, _ := cmd.Flags().GetString(flagHRP)
			key := crypto.GenPrivKeyEd25519()
			addr := key.PublicKey().Address()
			human, err := addr.Bech32(hrp)
			if err != nil {
				return errors.Wrap(err, "cannot encode address")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "private key: %s\n", hex.EncodeToString(key.Ed25519))
			fmt.Fprintf(out, "address:     %s\n", addr)
			fmt.Fprintf(out, "bech32:      %s\n", human)
			return nil
		},
	}
	cmd.Flags().String(flagHRP, "esc", "human readable part of the bech32 address")
	return cmd
}
