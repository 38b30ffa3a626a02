package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

/*
Encrypt text with a text key (zero-padded to 64 bits), PKCS#7 padding:
desblock encrypt -k mykey "This is a test!"

Decrypt the hex it printed:
desblock decrypt -k mykey 930b9de7376f23148d1d969072bca2b6

Hex keys, zero-bit padding, four workers:
desblock encrypt --key-format=hex -k 133457799BBCDFF1 -p zeros --workers 4 "message"

Show the key schedule:
desblock keys -k mykey --dump
*/

var configFlag string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "desblock",
		Short:         "DES block cipher tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Directory containing config.yaml")
	flags.StringP("key", "k", "", "Encryption key (text, or 16 hex digits with --key-format=hex)")
	flags.String("key-format", "text", "Key format: text, hex")
	flags.StringP("padding", "p", "pkcs7", "Padding scheme: pkcs7, zeros")
	flags.Int("workers", 1, "Goroutines used to transform the blocks of one message")
	flags.Bool("check-parity", false, "Reject keys without odd parity in every byte")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	keysCmd := newKeysCommand()
	keysCmd.Flags().Bool("dump", false, "Dump the round keys with their Go types")

	rootCmd.AddCommand(newEncryptCommand())
	rootCmd.AddCommand(newDecryptCommand())
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(newSelftestCommand())
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
