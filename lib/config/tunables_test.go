package config

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestDefaultTunablesMatchesKeyspaceDefaults(t *testing.T) {
	d := DefaultTunables()
	opts := d.KeyspaceOptions()

	if opts.LazyFreeThreshold != 64 {
		t.Fatalf("LazyFreeThreshold = %d, want 64", opts.LazyFreeThreshold)
	}
	if !opts.CanResize {
		t.Fatalf("CanResize = false, want true")
	}
	if opts.ForceResizeRatio != 5 {
		t.Fatalf("ForceResizeRatio = %d, want 5", opts.ForceResizeRatio)
	}
}

func TestStringRendersEverySection(t *testing.T) {
	out := DefaultTunables().String()
	for _, want := range []string{"VALUE ENCODING", "RECLAMATION", "RPC SERVER", "LOGGING"} {
		if !strings.Contains(out, want) {
			t.Fatalf("String() missing section %q, got:\n%s", want, out)
		}
	}
}

func TestRegisterFlagsAndFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)

	if err := cmd.PersistentFlags().Set("lazyfree-threshold", "128"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		t.Fatalf("BindPFlags: %v", err)
	}

	got := FromViper()
	if got.LazyFreeThreshold != 128 {
		t.Fatalf("LazyFreeThreshold = %d, want 128", got.LazyFreeThreshold)
	}
	if got.Endpoint != "0.0.0.0:8080" {
		t.Fatalf("Endpoint = %q, want default", got.Endpoint)
	}
}
