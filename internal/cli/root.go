package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string

	// Version info (set from main)
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "insurance",
	Short: "Vehicle-insurance MLOps pipeline",
	Long: `Trains a vehicle-insurance interest classifier from the document store,
promotes it to the object store when it beats the production model, and
serves predictions over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command. The process exit status reflects the run
// outcome.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "config file path")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}
