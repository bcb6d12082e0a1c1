package kv

import (
	"github.com/spf13/cobra"
	"github.com/tesserakv/kvcore/cmd/util"
	"github.com/tesserakv/kvcore/rpc/client"
)

var (
	rpcClient *client.RPCEngineClient

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations against a running kvcore server",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(hsetCmd)
	KeyValueCommands.AddCommand(hgetCmd)
	KeyValueCommands.AddCommand(hdelCmd)
	KeyValueCommands.AddCommand(rpushCmd)
	KeyValueCommands.AddCommand(lpushCmd)
	KeyValueCommands.AddCommand(lpopCmd)
	KeyValueCommands.AddCommand(rpopCmd)
	KeyValueCommands.AddCommand(blpopCmd)
	KeyValueCommands.AddCommand(scanCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the RPC engine client used by every kv subcommand
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	dbID := util.GetDBID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the engine client
	rpcClient, err = client.NewRPCEngineClient(
		dbID,
		*config,
		t,
		s,
	)

	return err
}
