// Command hoover runs a small in-process HOOVER simulation: a handful of
// simulated PEs, each backed by its own driver.Driver, exchanging halo state
// over transport.InMemory. It exists to exercise the library end to end, the
// way lvlath's examples/ directory runs each algorithm package against a toy
// graph rather than leaving it as library code nobody calls.
package main

import "github.com/hoover-rt/hoover/cmd/hoover/cmd"

func main() {
	cmd.Execute()
}
