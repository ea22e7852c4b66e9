package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var verbose bool

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "hoover",
	Short: "Run a small in-process HOOVER simulation",
	Long: `hoover drives one or more simulated processing elements through the
halo protocol (announce partitions, discover producers, pull remote vertices,
rebuild edges, run the user update, drain coupling messages) over an
in-memory transport, so the driver and data-structure packages can be
exercised as a whole rather than one at a time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.Ltime | log.Lmicroseconds)
		} else {
			log.SetFlags(0)
		}
		return nil
	},
}

// Execute runs the root command, flushing any registered atexit hooks (e.g.
// the run summary registered by runCmd) before the process exits.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("hoover: %v", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include timestamps in log output")
}
