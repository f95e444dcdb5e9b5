package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/bda"
	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/jobs"
	"github.com/teranos/bdaresume/outputs"
	"github.com/teranos/bdaresume/processor"
)

// SubmitCmd runs one extraction for an object already in the bucket
var SubmitCmd = &cobra.Command{
	Use:   "submit <key>",
	Short: "Run one extraction from the CLI and record it",
	Long: `Submit an extraction for an object already under the input prefix and wait
for it to finish, with the same retry and polling behaviour as the processor
function. The job is recorded in the local ledger (see 'bda jobs ls').

Examples:
  bda submit input/resume1.pdf
  bda submit input/resume1.pdf --stage LIVE`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	SubmitCmd.Flags().String("bucket", "", "Bucket name (default: from stack outputs)")
	SubmitCmd.Flags().String("blueprint-arn", "", "Blueprint ARN (default: from stack outputs)")
	SubmitCmd.Flags().String("project-arn", "", "Project ARN (default: from stack outputs)")
	SubmitCmd.Flags().String("stage", "", "Blueprint stage to run (e.g. LIVE)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	key := args[0]
	if !strings.HasPrefix(key, cfg.Storage.InputPrefix) {
		return errors.WithHintf(errors.NewInvalidRequestError("key %q is outside the input prefix", key),
			"upload it first with 'bda upload', which places it under %s", cfg.Storage.InputPrefix)
	}

	ids, err := resolveOutputs(ctx, cmd, cfg, func(o outputs.StackOutputs) bool {
		return o.BucketName != "" && o.ProjectArn != ""
	})
	if err != nil {
		return err
	}
	if err := requireBucket(ids); err != nil {
		return err
	}

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	store := jobs.NewStore(database)

	paths := processor.DerivePaths(key, cfg.Storage.OutputPrefix)
	stage, _ := cmd.Flags().GetString("stage")
	req := bda.Request{
		InputURI:       bda.S3URI(ids.BucketName, key),
		OutputURI:      bda.S3URI(ids.BucketName, paths.MetadataKey),
		BlueprintARN:   ids.BlueprintArn,
		BlueprintStage: stage,
		ProjectARN:     ids.ProjectArn,
		ProfileARN:     cfg.Automation.ProfileARN,
	}

	job := &jobs.Job{Bucket: ids.BucketName, InputKey: key, OutputURI: req.OutputURI}
	if err := store.Create(ctx, job); err != nil {
		return err
	}

	jsonOutput := display.ShouldOutputJSON(cmd)
	var spinner *pterm.SpinnerPrinter
	if !jsonOutput {
		spinner, _ = pterm.DefaultSpinner.Start("Extracting " + req.InputURI)
	}

	handle, status, runErr := newRunner(awsCfg, cfg).SubmitAndWait(ctx, req)

	state, msg := string(status.State), status.ErrorMessage
	if runErr != nil {
		state, msg = jobs.StatusFailed, runErr.Error()
	}
	if err := store.Finish(ctx, job.ID, string(handle), state, msg); err != nil {
		return errors.WithSecondaryError(err, runErr)
	}

	if runErr != nil {
		if spinner != nil {
			spinner.Fail("Extraction failed")
		}
		return runErr
	}

	job.InvocationARN, job.Status, job.ErrorMessage = string(handle), state, msg
	if jsonOutput {
		return display.OutputJSON(job)
	}

	if status.State.Failed() {
		spinner.Warning("Extraction finished with " + state)
	} else {
		spinner.Success("Extraction finished with " + state)
	}
	display.KeyValues([][2]string{
		{"Job", job.ID},
		{"Invocation", job.InvocationARN},
		{"Output", "s3://" + ids.BucketName + "/" + paths.OutputPrefix},
	})
	if msg != "" {
		pterm.Warning.Println(msg)
	}
	return nil
}
