// Command kvcore is the CLI entry point: serve runs the engine behind
// an RPC transport, kv drives a running server, version prints the
// build version.
package main

import "github.com/tesserakv/kvcore/cmd"

func main() {
	cmd.Execute()
}
