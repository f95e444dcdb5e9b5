package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/cmd/bda/commands"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bda",
	Short: "bda - Resume extraction on Bedrock Data Automation",
	Long: `bda - Operator tooling for resume extraction on Bedrock Data Automation.

The infrastructure stack (see cmd/infra) provisions the resume bucket, the
processor function and the data automation blueprint. Resumes written under
the input prefix are processed automatically; these commands cover the rest.

Available commands:
  promote  - Promote the blueprint from DEVELOPMENT to LIVE
  upload   - Upload resumes to the input prefix
  watch    - Upload resumes dropped into a directory
  submit   - Run one extraction from the CLI and record it
  results  - Download and parse an extraction result
  jobs     - List locally recorded jobs
  outputs  - Show or cache the stack outputs
  am       - Show configuration ("I am")

Examples:
  bda outputs save               # Cache stack outputs after cdk deploy
  bda upload resume1.pdf         # Upload to input/, triggering processing
  bda promote                    # Promote the blueprint to LIVE`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this TOML file only")
	rootCmd.PersistentFlags().String("profile", "", "AWS shared config profile (overrides aws.profile)")
	rootCmd.PersistentFlags().String("region", "", "AWS region (overrides aws.region)")

	rootCmd.AddCommand(commands.PromoteCmd)
	rootCmd.AddCommand(commands.UploadCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.SubmitCmd)
	rootCmd.AddCommand(commands.ResultsCmd)
	rootCmd.AddCommand(commands.JobsCmd)
	rootCmd.AddCommand(commands.OutputsCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errors.Diagnostic(err))
		os.Exit(1)
	}
}
