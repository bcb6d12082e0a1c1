package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RegisterFlags attaches every Tunables flag to cmd's persistent flag
// set, defaulted from DefaultTunables.
func RegisterFlags(cmd *cobra.Command) {
	d := DefaultTunables()
	f := cmd.PersistentFlags()

	f.Int("hash-max-small-entries", d.HashMaxSmallEntries, "maximum field count before a hash converts from its compact form to a full map")
	f.Int("hash-max-small-value", d.HashMaxSmallValue, "maximum field or value size in bytes before a hash converts from its compact form to a full map")
	f.Int("list-max-segment-size", d.ListMaxSegmentSize, "maximum element count per list segment")
	f.Int("list-max-segment-bytes", d.ListMaxSegmentBytes, "maximum byte size per list segment")
	f.Int("list-compress-depth", d.ListCompressDepth, "number of segments at each end of a list exempt from compression; stored in the list options, but list segments are never compressed")
	f.Int("lazyfree-threshold", d.LazyFreeThreshold, "element/segment count above which a delete is handed to the background reclaimer instead of freed inline")
	f.Bool("can-resize", d.CanResize, "whether dict tables are allowed to grow/shrink on demand")
	f.Uint64("force-resize-ratio", d.ForceResizeRatio, "load-factor ratio that forces a resize even when resizing is otherwise discouraged")
	f.String("endpoint", d.Endpoint, "address the RPC server listens on")
	f.String("transport", d.Transport, "transport to use (tcp, http, unix)")
	f.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
}

// FromViper reads back every flag RegisterFlags added, after
// BindPFlags has bound them.
func FromViper() Tunables {
	return Tunables{
		HashMaxSmallEntries: viper.GetInt("hash-max-small-entries"),
		HashMaxSmallValue:   viper.GetInt("hash-max-small-value"),
		ListMaxSegmentSize:  viper.GetInt("list-max-segment-size"),
		ListMaxSegmentBytes: viper.GetInt("list-max-segment-bytes"),
		ListCompressDepth:   viper.GetInt("list-compress-depth"),
		LazyFreeThreshold:   viper.GetInt("lazyfree-threshold"),
		CanResize:           viper.GetBool("can-resize"),
		ForceResizeRatio:    viper.GetUint64("force-resize-ratio"),
		Endpoint:            viper.GetString("endpoint"),
		Transport:           viper.GetString("transport"),
		LogLevel:            viper.GetString("log-level"),
	}
}

// BindAndLoad binds cmd's flags to viper and loads .env / .env.local
// overrides. Environment variables use the KVCORE_ prefix, e.g.
// KVCORE_LAZYFREE_THRESHOLD.
func BindAndLoad(cmd *cobra.Command) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("kvcore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return viper.BindPFlags(cmd.PersistentFlags())
}
