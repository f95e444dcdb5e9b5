package commands

import (
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/outputs"
)

// OutputsCmd shows or caches the deployed stack's outputs
var OutputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Show or cache the stack outputs",
}

var outputsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stack outputs from CloudFormation",
	RunE:  runOutputsShow,
}

var outputsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the stack outputs to stack.outputs_file",
	Long: `Read the deployed stack's outputs from CloudFormation and cache them in
stack.outputs_file (TOML). Other commands read the cache before asking
CloudFormation again.`,
	RunE: runOutputsSave,
}

func init() {
	OutputsCmd.AddCommand(outputsShowCmd)
	OutputsCmd.AddCommand(outputsSaveCmd)
}

func fetchStackOutputs(cmd *cobra.Command) (*am.Config, outputs.StackOutputs, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, outputs.StackOutputs{}, err
	}
	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return nil, outputs.StackOutputs{}, err
	}
	o, err := outputs.NewCloudFormationSource(cloudformation.NewFromConfig(awsCfg), cfg.Stack.Name).Outputs(ctx)
	return cfg, o, err
}

func runOutputsShow(cmd *cobra.Command, args []string) error {
	_, o, err := fetchStackOutputs(cmd)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(o)
	}

	m := o.Map()
	pairs := make([][2]string, 0, len(m))
	for _, k := range o.Keys() {
		pairs = append(pairs, [2]string{k, m[k]})
	}
	display.KeyValues(pairs)
	return nil
}

func runOutputsSave(cmd *cobra.Command, args []string) error {
	cfg, o, err := fetchStackOutputs(cmd)
	if err != nil {
		return err
	}
	if err := outputs.Save(cfg.Stack.OutputsFile, o); err != nil {
		return err
	}
	pterm.Success.Printfln("Saved outputs of %s to %s", cfg.Stack.Name, cfg.Stack.OutputsFile)
	return nil
}
