package commands

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/bda"
	"github.com/teranos/bdaresume/db"
	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/jobs"
	"github.com/teranos/bdaresume/logger"
)

// ResultsCmd downloads the structured result of a finished job
var ResultsCmd = &cobra.Command{
	Use:   "results <invocation-arn>",
	Short: "Download and parse an extraction result",
	Long: `Look up the job's output location, fetch its result.json and save it
under results.dir as <base>.json. The parsed document is printed.

The service reports the location of job_metadata.json; the structured
result sits next to it at 0/custom_output/0/result.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

func init() {
	ResultsCmd.Flags().String("dir", "", "Directory to save results in (default: results.dir)")
}

func runResults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Results.Dir
	}

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return err
	}
	client := bda.NewClientFromConfig(awsCfg, profileSource(awsCfg, cfg))
	fetcher := bda.NewFetcher(client, s3.NewFromConfig(awsCfg))

	result, err := fetcher.Fetch(ctx, bda.Handle(args[0]), dir)
	if err != nil {
		return err
	}
	recordResultPath(cmd, cfg, result)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result.Data)
	}

	pterm.Success.Printfln("Saved %s", result.LocalPath)
	data, err := display.MarshalJSON(result.Data)
	if err != nil {
		return err
	}
	pterm.Println(string(data))
	return nil
}

// recordResultPath notes the download in the ledger when the job was submitted from here
func recordResultPath(cmd *cobra.Command, cfg *am.Config, result *bda.Result) {
	database, err := openDatabase(cfg)
	if err != nil {
		logger.Warnw("Job ledger unavailable", logger.FieldError, err)
		return
	}
	defer database.Close()

	err = jobs.NewStore(database).SetResultPath(cmd.Context(), result.Handle.String(), result.LocalPath)
	switch {
	case errors.IsNotFoundError(err):
		logger.Debugw("Job not in local ledger", logger.FieldInvocationARN, result.Handle)
	case errors.Is(err, db.ErrDatabaseBusy), db.IsDatabaseClosed(err):
		pterm.Warning.Printfln("Result saved to %s but not recorded in the job ledger: %s",
			result.LocalPath, errors.Diagnostic(err))
	case err != nil:
		logger.Warnw("Failed to record result path", logger.FieldError, err)
	}
}
