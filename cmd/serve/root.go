package serve

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tesserakv/kvcore/lib/config"
	"github.com/tesserakv/kvcore/lib/engine"
	"github.com/tesserakv/kvcore/rpc/common"
	"github.com/tesserakv/kvcore/rpc/serializer"
	"github.com/tesserakv/kvcore/rpc/server"
	"github.com/tesserakv/kvcore/rpc/transport"
	"github.com/tesserakv/kvcore/rpc/transport/http"
	"github.com/tesserakv/kvcore/rpc/transport/tcp"
	"github.com/tesserakv/kvcore/rpc/transport/unix"
)

var (
	serveCmdConfig config.Tunables

	ServeCmd = &cobra.Command{
		Use:     "serve",
		Short:   "Start the kvcore server",
		Long:    `Start the kvcore server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is KVCORE_<flag> (e.g. KVCORE_LOG_LEVEL=debug)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(func() {
		if err := config.BindAndLoad(ServeCmd); err != nil {
			panic(err)
		}
	})

	config.RegisterFlags(ServeCmd)

	key := "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, "connection idle timeout, in seconds")
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to Tunables.
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	serveCmdConfig = config.FromViper()
	return nil
}

// run starts the kvcore server.
func run(_ *cobra.Command, _ []string) error {
	eng := engine.New(serveCmdConfig)

	// parse the serializer
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	case "binary":
		s = serializer.NewBinarySerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	// parse the transport
	var t transport.IRPCServerTransport
	switch serveCmdConfig.Transport {
	case "http":
		t = http.NewHttpServerTransport()
	case "tcp":
		t = tcp.NewTCPDefaultServerTransport()
	case "unix":
		t = unix.NewUnixDefaultServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", serveCmdConfig.Transport)
	}

	serverConfig := common.ServerConfig{
		Endpoint:      serveCmdConfig.Endpoint,
		TimeoutSecond: viper.GetInt64("timeout"),
		LogLevel:      serveCmdConfig.LogLevel,
	}

	serv := server.NewRPCServer(
		serverConfig,
		eng,
		t,
		s,
	)

	return serv.Serve()
}
