package commands

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockdataautomation"
	"github.com/aws/aws-sdk-go-v2/service/bedrockdataautomation/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/outputs"
	"github.com/teranos/bdaresume/promote"
)

const (
	testBlueprintARN = "arn:aws:bedrock:ap-south-1:123456789012:blueprint/abc"
	testProjectARN   = "arn:aws:bedrock:ap-south-1:123456789012:data-automation-project/def"
)

type fakeOutputsSource struct {
	out   outputs.StackOutputs
	err   error
	calls int
}

func (f *fakeOutputsSource) Outputs(context.Context) (outputs.StackOutputs, error) {
	f.calls++
	return f.out, f.err
}

type fakeBlueprintAPI struct {
	blueprint *types.Blueprint
	updateErr error

	gets    int
	updates []*bedrockdataautomation.UpdateBlueprintInput
}

func (f *fakeBlueprintAPI) GetBlueprint(_ context.Context, _ *bedrockdataautomation.GetBlueprintInput, _ ...func(*bedrockdataautomation.Options)) (*bedrockdataautomation.GetBlueprintOutput, error) {
	f.gets++
	return &bedrockdataautomation.GetBlueprintOutput{Blueprint: f.blueprint}, nil
}

func (f *fakeBlueprintAPI) UpdateBlueprint(_ context.Context, in *bedrockdataautomation.UpdateBlueprintInput, _ ...func(*bedrockdataautomation.Options)) (*bedrockdataautomation.UpdateBlueprintOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &bedrockdataautomation.UpdateBlueprintOutput{}, nil
}

func developmentBlueprint() *types.Blueprint {
	return &types.Blueprint{
		BlueprintArn:   aws.String(testBlueprintARN),
		BlueprintName:  aws.String("resume-parser"),
		BlueprintStage: types.BlueprintStageDevelopment,
		Schema:         aws.String(`{"class":"Resume"}`),
	}
}

// stubAWS swaps the CloudFormation and blueprint clients for fakes and keeps
// the SDK away from the developer's shared config files.
func stubAWS(t *testing.T, src outputs.Source, api promote.BlueprintAPI) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")

	origSource, origPromoter := stackOutputsSource, newPromoter
	stackOutputsSource = func(aws.Config, string) outputs.Source { return src }
	newPromoter = func(aws.Config) *promote.Promoter { return promote.New(api) }
	t.Cleanup(func() {
		stackOutputsSource, newPromoter = origSource, origPromoter
	})
}

// runPromoteCommand executes runPromote under a root carrying the global flags
func runPromoteCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := &cobra.Command{Use: "bda", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().String("profile", "", "")
	root.PersistentFlags().String("region", "", "")
	root.PersistentFlags().Bool("json", false, "")
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	cmd := &cobra.Command{Use: "promote", RunE: runPromote}
	cmd.Flags().String("blueprint-arn", "", "")
	cmd.Flags().String("project-arn", "", "")
	cmd.Flags().String("stage", "", "")
	root.AddCommand(cmd)

	root.SetArgs(append([]string{"promote"}, args...))
	return root.Execute()
}

// configWithoutOutputsFile points stack.outputs_file at a path that does not exist
func configWithoutOutputsFile(t *testing.T) string {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "bda-outputs.toml")
	return writeConfig(t, "[stack]\noutputs_file = \""+filepath.ToSlash(missing)+"\"\n")
}

func TestPromote_MissingProjectArn(t *testing.T) {
	src := &fakeOutputsSource{out: outputs.StackOutputs{
		StackName:    "BDAResumeStack",
		BucketName:   "resume-bucket",
		BlueprintArn: testBlueprintARN,
	}}
	api := &fakeBlueprintAPI{blueprint: developmentBlueprint()}
	stubAWS(t, src, api)

	err := runPromoteCommand(t, "--config", configWithoutOutputsFile(t), "--blueprint-arn", testBlueprintARN)

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
	assert.Equal(t, 1, src.calls)
	assert.Zero(t, api.gets)
	assert.Empty(t, api.updates)
}

func TestPromote_StackNotDeployed(t *testing.T) {
	src := &fakeOutputsSource{err: errors.Wrap(errors.ErrNotFound, "stack BDAResumeStack")}
	api := &fakeBlueprintAPI{blueprint: developmentBlueprint()}
	stubAWS(t, src, api)

	err := runPromoteCommand(t, "--config", configWithoutOutputsFile(t), "--blueprint-arn", testBlueprintARN)

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Empty(t, api.updates)
}

func TestPromote_UpdateFailure(t *testing.T) {
	updateErr := errors.New("access denied")
	src := &fakeOutputsSource{}
	api := &fakeBlueprintAPI{blueprint: developmentBlueprint(), updateErr: updateErr}
	stubAWS(t, src, api)

	err := runPromoteCommand(t, "--config", configWithoutOutputsFile(t),
		"--blueprint-arn", testBlueprintARN, "--project-arn", testProjectARN)

	require.Error(t, err)
	assert.True(t, errors.Is(err, updateErr))
	assert.Zero(t, src.calls)
	require.Len(t, api.updates, 1)
	assert.Equal(t, types.BlueprintStageLive, api.updates[0].BlueprintStage)
	assert.Equal(t, `{"class":"Resume"}`, aws.ToString(api.updates[0].Schema))
}

func TestPromote_AlreadyLive(t *testing.T) {
	bp := developmentBlueprint()
	bp.BlueprintStage = types.BlueprintStageLive
	api := &fakeBlueprintAPI{blueprint: bp}
	stubAWS(t, &fakeOutputsSource{}, api)

	err := runPromoteCommand(t, "--config", configWithoutOutputsFile(t), "--json",
		"--blueprint-arn", testBlueprintARN, "--project-arn", testProjectARN)

	require.NoError(t, err)
	assert.Equal(t, 1, api.gets)
	assert.Empty(t, api.updates)
}
