// Command processor is the Lambda function that turns resume uploads into
// data automation jobs. It is built for provided.al2023 as "bootstrap".
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/awsconf"
	"github.com/teranos/bdaresume/bda"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/logger"
	"github.com/teranos/bdaresume/processor"
	"github.com/teranos/bdaresume/version"
)

func main() {
	h, err := setup(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "processor init failed:", errors.Diagnostic(err))
		os.Exit(1)
	}
	defer logger.Cleanup()
	lambda.Start(h.Handle)
}

func setup(ctx context.Context) (*processor.Handler, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.InitializeForLambda(cfg.Processor.Production); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// The execution role supplies credentials
	awsCfg, err := awsconf.Load(ctx, cfg.AWS.Region, awsconf.HostIdentity())
	if err != nil {
		return nil, err
	}

	var profiles bda.ProfileSource = bda.FixedProfile(cfg.Automation.ProfileARN)
	if cfg.Automation.ProfileARN == "" {
		profiles = bda.NewProfileResolver(sts.NewFromConfig(awsCfg), cfg.AWS.Region, cfg.Automation.ProfileID)
	}

	runner := bda.NewRunner(bda.NewClientFromConfig(awsCfg, profiles),
		bda.RetryPolicy{MaxAttempts: cfg.Automation.MaxAttempts, BaseDelay: cfg.Automation.Backoff()},
		bda.PollPolicy{Interval: cfg.Automation.PollInterval(), Budget: cfg.Automation.MaxWait()},
		bda.WithLogger(logger.ComponentLogger("bda")),
	)

	logger.Infow("Processor ready", append([]interface{}{
		logger.FieldBucket, cfg.Storage.Bucket,
		logger.FieldProjectARN, cfg.Automation.ProjectARN,
		logger.FieldMaxAttempts, cfg.Automation.MaxAttempts,
		"max_wait_seconds", cfg.Automation.MaxWaitSeconds,
		"timeout_seconds", cfg.Processor.TimeoutSeconds,
	}, version.Get().LogFields()...)...)
	return processor.New(runner, processor.SettingsFromConfig(cfg)), nil
}
