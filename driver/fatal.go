package driver

import (
	"fmt"
	"log"
	"os"
)

// fatalHandler is invoked for capacity-exhaustion and invariant-violation
// conditions, which spec.md §7 treats as unconditionally fatal ("the
// process aborts with a diagnostic naming the pool and the PE"). The
// default handler logs and calls os.Exit(1) — the Go equivalent of the
// original runtime's abort() — never a panic recovered elsewhere, so no
// exception propagates across an iteration boundary. Tests substitute a
// non-exiting handler via WithFatalHandler.
type fatalHandler func(pe int, component, msg string)

func defaultFatalHandler(pe int, component, msg string) {
	log.Printf("hoover: fatal in component %q on pe %d: %s", component, pe, msg)
	os.Exit(1)
}

func (d *Driver) fatal(component, format string, args ...any) {
	d.onFatal(d.myPE, component, fmt.Sprintf(format, args...))
}
