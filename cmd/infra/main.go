// Command infra is the CDK app for the resume processing stack.
//
//	cdk deploy            # synthesizes via `go run ./cmd/infra` (see cdk.json)
//	cdk deploy -c account=123456789012
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/teranos/bdaresume/am"
	"github.com/teranos/bdaresume/errors"
	"github.com/teranos/bdaresume/logger"
	"github.com/teranos/bdaresume/stack"
)

func main() {
	defer jsii.Close()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errors.Diagnostic(err))
		os.Exit(1)
	}
}

func run() error {
	if err := logger.Initialize(false, 0); err != nil {
		return err
	}
	defer logger.Cleanup()

	cfg, err := am.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	app := awscdk.NewApp(nil)
	if account, ok := app.Node().TryGetContext(jsii.String("account")).(string); ok && account != "" {
		cfg.Stack.Account = account
	}
	if cfg.Stack.Account == "" {
		cfg.Stack.Account = os.Getenv("CDK_DEFAULT_ACCOUNT")
	}

	schema, err := stack.LoadSchema(context.Background(), cfg.Stack.SchemaSource)
	if err != nil {
		return err
	}

	stack.NewResumeStack(app, cfg.Stack.Name, stack.PropsFromConfig(cfg, schema))
	app.Synth(nil)
	return nil
}
