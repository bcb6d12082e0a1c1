package config

import (
	"fmt"
	"strings"

	"github.com/tesserakv/kvcore/lib/keyspace"
)

// Tunables holds every spec-level knob that governs value encoding and
// reclamation, plus the ambient server settings (bind address, log
// level) that sit alongside them on the command line: one flat struct,
// populated once from flags/env, then handed down to the runtime
// singletons that actually consume it.
type Tunables struct {
	// Value encoding thresholds (spec.md §6).
	HashMaxSmallEntries int
	HashMaxSmallValue   int
	ListMaxSegmentSize  int
	ListMaxSegmentBytes int
	ListCompressDepth   int

	// Reclamation and dict resizing (spec.md §6).
	LazyFreeThreshold int
	CanResize         bool
	ForceResizeRatio  uint64

	// Server settings.
	Endpoint  string
	Transport string
	LogLevel  string
}

// DefaultTunables matches keyspace.DefaultOptions plus the server
// defaults the serve command registers.
func DefaultTunables() Tunables {
	opts := keyspace.DefaultOptions()
	return Tunables{
		HashMaxSmallEntries: opts.HashMaxSmallEntries,
		HashMaxSmallValue:   opts.HashMaxSmallValue,
		ListMaxSegmentSize:  opts.ListMaxSegmentSize,
		ListMaxSegmentBytes: opts.ListMaxSegmentBytes,
		ListCompressDepth:   opts.ListCompressDepth,
		LazyFreeThreshold:   opts.LazyFreeThreshold,
		CanResize:           opts.CanResize,
		ForceResizeRatio:    opts.ForceResizeRatio,
		Endpoint:            "0.0.0.0:8080",
		Transport:           "tcp",
		LogLevel:            "info",
	}
}

// KeyspaceOptions projects the value-encoding and reclamation knobs
// onto a keyspace.Options, the shape the engine actually consumes.
func (t Tunables) KeyspaceOptions() keyspace.Options {
	return keyspace.Options{
		HashMaxSmallEntries: t.HashMaxSmallEntries,
		HashMaxSmallValue:   t.HashMaxSmallValue,
		ListMaxSegmentSize:  t.ListMaxSegmentSize,
		ListMaxSegmentBytes: t.ListMaxSegmentBytes,
		ListCompressDepth:   t.ListCompressDepth,
		LazyFreeThreshold:   t.LazyFreeThreshold,
		CanResize:           t.CanResize,
		ForceResizeRatio:    t.ForceResizeRatio,
	}
}

// String renders Tunables as a sectioned, human-readable dump
// suitable for a startup log line.
func (t Tunables) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Value Encoding")
	addField("Hash Max Small Entries", fmt.Sprintf("%d", t.HashMaxSmallEntries))
	addField("Hash Max Small Value", fmt.Sprintf("%d bytes", t.HashMaxSmallValue))
	addField("List Max Segment Size", fmt.Sprintf("%d", t.ListMaxSegmentSize))
	addField("List Max Segment Bytes", fmt.Sprintf("%d bytes", t.ListMaxSegmentBytes))
	addField("List Compress Depth", fmt.Sprintf("%d", t.ListCompressDepth))

	addSection("Reclamation")
	addField("Lazy Free Threshold", fmt.Sprintf("%d", t.LazyFreeThreshold))
	addField("Can Resize", fmt.Sprintf("%t", t.CanResize))
	addField("Force Resize Ratio", fmt.Sprintf("%d", t.ForceResizeRatio))

	addSection("RPC Server")
	addField("Endpoint", t.Endpoint)
	addField("Transport", t.Transport)

	addSection("Logging")
	addField("Log Level", t.LogLevel)

	return sb.String()
}
