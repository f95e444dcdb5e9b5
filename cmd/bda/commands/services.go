package commands

import (
	"context"
	"database/sql"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/awsconf"
	"github.com/teranos/bdaresume/bda"
	"github.com/teranos/bdaresume/db"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/logger"
	"github.com/teranos/bdaresume/outputs"
	"github.com/teranos/bdaresume/promote"
)

// stackOutputsSource reads the live outputs of a deployed stack
var stackOutputsSource = func(awsCfg aws.Config, stack string) outputs.Source {
	return outputs.NewCloudFormationSource(cloudformation.NewFromConfig(awsCfg), stack)
}

// newPromoter builds the blueprint promoter
var newPromoter = func(awsCfg aws.Config) *promote.Promoter {
	return promote.NewFromConfig(awsCfg)
}

// loadViper builds the configuration source and applies the global flag overrides
func loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := am.NewViper()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if v, err = am.NewViperFromFile(path); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("profile") {
		profile, _ := cmd.Flags().GetString("profile")
		v.Set("aws.profile", profile)
	}
	if cmd.Flags().Changed("region") {
		region, _ := cmd.Flags().GetString("region")
		v.Set("aws.region", region)
	}
	return v, nil
}

// loadConfig loads and validates configuration
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	v, err := loadViper(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// awsConfig resolves SDK configuration for the operator's profile
func awsConfig(ctx context.Context, cfg *am.Config) (aws.Config, error) {
	src := awsconf.Profile(cfg.AWS.Profile)
	logger.Debugw("Loading AWS configuration", "region", cfg.AWS.Region, "credentials", src.String())
	return awsconf.Load(ctx, cfg.AWS.Region, src)
}

// newRunner builds the submit-and-wait runner from configured policies
func newRunner(awsCfg aws.Config, cfg *am.Config) *bda.Runner {
	client := bda.NewClientFromConfig(awsCfg, profileSource(awsCfg, cfg))
	return bda.NewRunner(client,
		bda.RetryPolicy{MaxAttempts: cfg.Automation.MaxAttempts, BaseDelay: cfg.Automation.Backoff()},
		bda.PollPolicy{Interval: cfg.Automation.PollInterval(), Budget: cfg.Automation.MaxWait()},
		bda.WithLogger(logger.ComponentLogger("bda")),
	)
}

// profileSource picks a configured profile ARN or derives it from the caller's account
func profileSource(awsCfg aws.Config, cfg *am.Config) bda.ProfileSource {
	if cfg.Automation.ProfileARN != "" {
		return bda.FixedProfile(cfg.Automation.ProfileARN)
	}
	return bda.NewProfileResolver(sts.NewFromConfig(awsCfg), cfg.AWS.Region, cfg.Automation.ProfileID)
}

// openDatabase opens and migrates the local job ledger
func openDatabase(cfg *am.Config) (*sql.DB, error) {
	database, err := db.OpenWithMigrations(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open job ledger at %s", cfg.Database.Path)
	}
	return database, nil
}

// resolveOutputs collects stack identifiers from, in order of precedence:
// command flags, configuration, the cached outputs file, and CloudFormation.
// Later sources are consulted only while complete reports something missing.
func resolveOutputs(ctx context.Context, cmd *cobra.Command, cfg *am.Config, complete func(outputs.StackOutputs) bool) (outputs.StackOutputs, error) {
	flagValue := func(name string) string {
		if cmd.Flags().Lookup(name) == nil {
			return ""
		}
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	o := outputs.StackOutputs{
		StackName:    cfg.Stack.Name,
		BucketName:   flagValue("bucket"),
		BlueprintArn: flagValue("blueprint-arn"),
		ProjectArn:   flagValue("project-arn"),
	}.Merge(outputs.StackOutputs{
		BucketName:   cfg.Storage.Bucket,
		BlueprintArn: cfg.Automation.BlueprintARN,
		ProjectArn:   cfg.Automation.ProjectARN,
	})
	if complete(o) {
		return o, nil
	}

	if _, err := os.Stat(cfg.Stack.OutputsFile); err == nil {
		cached, err := outputs.NewFileSource(cfg.Stack.OutputsFile).Outputs(ctx)
		if err != nil {
			return o, err
		}
		logger.Debugw("Using cached stack outputs", "file", cfg.Stack.OutputsFile)
		o = o.Merge(cached)
		if complete(o) {
			return o, nil
		}
	}

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return o, err
	}
	logger.Debugw("Reading stack outputs from CloudFormation", "stack", cfg.Stack.Name)
	live, err := stackOutputsSource(awsCfg, cfg.Stack.Name).Outputs(ctx)
	if err != nil {
		return o, err
	}
	return o.Merge(live), nil
}

func hasBucket(o outputs.StackOutputs) bool { return o.BucketName != "" }

func requireBucket(o outputs.StackOutputs) error {
	if hasBucket(o) {
		return nil
	}
	return errors.WithHint(errors.Wrap(errors.ErrNotFound, "bucket name"),
		"pass --bucket, set storage.bucket, or deploy the stack")
}
