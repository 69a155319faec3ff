// Package commands defines all Cobra CLI commands for the vsearch binary.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/audit"
	"github.com/vertexkit/vsearch/internal/config"
	"github.com/vertexkit/vsearch/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vsearch",
		Short: "Manage and query Vertex AI Search data stores",
		Long: `vsearch is a CLI for Google Cloud Discovery Engine (Vertex AI Search).

It creates data stores with document processing configs, creates search
engines, imports documents from Cloud Storage or BigQuery, inspects parsed
documents and chunks, and runs searches — from the terminal, as an HTTP proxy
(vsearch serve), or as grounded LLM answers (vsearch ask).

The project identity is read from GOOGLE_CLOUD_PROJECT / VSEARCH_LOCATION
or a YAML config file (~/.vsearch/config.yaml).
See 'vsearch --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A local .env is a convenience for development; absence is fine.
			_ = godotenv.Load()

			log := logging.New()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.vsearch/config.yaml)")

	root.AddCommand(
		NewDataStoreCmd(),
		NewEngineCmd(),
		NewImportCmd(),
		NewDocumentsCmd(),
		NewChunksCmd(),
		NewStatusCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewServeCmd(),
		NewOpsCmd(),
		NewVersionCmd(),
	)

	return root
}
