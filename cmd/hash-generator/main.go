// Command hash-generator prints bcrypt hashes for API keys, ready to be used
// as API_KEY_HASH. Without arguments it generates a fresh random key.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// keyBytes is the entropy of a generated API key.
const keyBytes = 32

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:          "hash-generator [api-key...]",
		Short:        "Generate bcrypt hashes for API_KEY_HASH",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				key, err := generateKey(rand.Reader)
				if err != nil {
					return err
				}
				keys = []string{key}
			}

			for _, key := range keys {
				hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
				if err != nil {
					return fmt.Errorf("hash api key: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\nAPI_KEY_HASH=%s\n\n", key, hash)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	return cmd
}

func generateKey(r io.Reader) (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
