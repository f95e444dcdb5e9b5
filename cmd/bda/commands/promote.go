package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/outputs"
	"github.com/teranos/bdaresume/promote"
)

// PromoteCmd promotes the blueprint to the target stage
var PromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote the blueprint from DEVELOPMENT to LIVE",
	Long: `Promote the data automation blueprint to automation.target_stage (LIVE).

The blueprint and project ARNs come from flags, configuration, the cached
outputs file, or the deployed stack's CloudFormation outputs. A blueprint
already at the target stage is left untouched. The project picks up the
LIVE blueprint automatically.

Examples:
  bda promote
  bda promote --blueprint-arn arn:aws:bedrock:... --project-arn arn:aws:bedrock:...`,
	RunE: runPromote,
}

func init() {
	PromoteCmd.Flags().String("blueprint-arn", "", "Blueprint ARN (default: from stack outputs)")
	PromoteCmd.Flags().String("project-arn", "", "Project ARN (default: from stack outputs)")
	PromoteCmd.Flags().String("stage", "", "Target stage (default: automation.target_stage)")
}

func runPromote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if stage, _ := cmd.Flags().GetString("stage"); stage != "" {
		cfg.Automation.TargetStage = stage
	}

	ids, err := resolveOutputs(ctx, cmd, cfg, func(o outputs.StackOutputs) bool {
		return o.BlueprintArn != "" && o.ProjectArn != ""
	})
	if err != nil {
		return err
	}
	if err := ids.RequirePromotionTargets(); err != nil {
		return err
	}

	jsonOutput := display.ShouldOutputJSON(cmd)
	if !jsonOutput {
		pterm.Info.Printfln("Blueprint ARN: %s", ids.BlueprintArn)
		pterm.Info.Printfln("Project ARN:   %s", ids.ProjectArn)
	}

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return err
	}
	report, err := newPromoter(awsCfg).Promote(ctx, ids.BlueprintArn, cfg.Automation.TargetStage)
	if err != nil {
		return err
	}

	if jsonOutput {
		return display.OutputJSON(report)
	}
	switch report.Outcome {
	case promote.OutcomeAlreadyPromoted:
		pterm.Success.Printfln("Blueprint is already in %s stage", report.Stage)
	default:
		pterm.Success.Printfln("Blueprint promoted from %s to %s", report.PreviousStage, report.Stage)
	}
	pterm.Success.Println("Project will automatically use the LIVE blueprint")
	return nil
}
