// Package cli provides the cobra command tree for the rfplens binary.
// Services are injected as package vars before Execute runs; commands that
// find their service nil fail with a configuration error instead of
// panicking.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	ingestService     driving.Ingestor
	retrievalService  driving.Retriever
	evaluationService driving.Evaluator
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rfplens",
	Short: "RFP document retrieval and analysis",
	Long: `rfplens ingests RFP requirement and proposal response documents,
builds a local similarity index over them, and serves filtered retrieval
and faithfulness evaluation to analysis tooling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles the driving ports the commands depend on.
type Services struct {
	Ingestor  driving.Ingestor
	Retriever driving.Retriever
	Evaluator driving.Evaluator
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingestor
	retrievalService = s.Retriever
	evaluationService = s.Evaluator
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
