package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tesserakv/kvcore/cmd/kv"
	"github.com/tesserakv/kvcore/cmd/serve"
	"github.com/tesserakv/kvcore/cmd/util"
)

const (
	Version = "0.1.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvcore",
		Short: "in-memory data structure engine",
		Long: fmt.Sprintf(`kvcore (v%s)

An in-memory key-value engine with strings, hashes and lists, served
over a pluggable RPC transport, or driven directly as a Go library.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvcore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kvcore v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
