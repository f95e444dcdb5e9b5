package am

import (
	"strings"

	"github.com/teranos/bdaresume/errors"
)

// Validate checks that the configuration is internally consistent.
// Identifiers such as the bucket or blueprint ARN are checked by the
// operations that need them, not here.
func (c *Config) Validate() error {
	if c.AWS.Region == "" {
		return errors.New("aws.region cannot be empty")
	}

	if c.Storage.InputPrefix == "" {
		return errors.New("storage.input_prefix cannot be empty (every key would trigger processing)")
	}
	if c.Storage.OutputPrefix == "" {
		return errors.New("storage.output_prefix cannot be empty")
	}
	if strings.HasPrefix(c.Storage.OutputPrefix, c.Storage.InputPrefix) {
		return errors.Newf("storage.output_prefix %q must not be under storage.input_prefix %q (results would retrigger processing)",
			c.Storage.OutputPrefix, c.Storage.InputPrefix)
	}
	if c.Storage.MaxFileSizeMB < 0 {
		return errors.Newf("storage.max_file_size_mb must be >= 0, got %d", c.Storage.MaxFileSizeMB)
	}
	for _, ext := range c.Storage.SupportedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Newf("storage.supported_extensions entry %q must start with '.'", ext)
		}
	}

	if c.Automation.MaxAttempts < 1 || c.Automation.MaxAttempts > MaxAttempts {
		return errors.Newf("automation.max_attempts must be between 1 and %d, got %d", MaxAttempts, c.Automation.MaxAttempts)
	}
	if c.Automation.BackoffSeconds < 0 {
		return errors.Newf("automation.backoff_seconds must be >= 0, got %d", c.Automation.BackoffSeconds)
	}
	if c.Automation.PollIntervalSeconds <= 0 {
		return errors.Newf("automation.poll_interval_seconds must be > 0, got %d", c.Automation.PollIntervalSeconds)
	}
	if c.Automation.MaxWaitSeconds < 0 {
		return errors.Newf("automation.max_wait_seconds must be >= 0, got %d", c.Automation.MaxWaitSeconds)
	}
	if c.Automation.TargetStage == "" {
		return errors.New("automation.target_stage cannot be empty")
	}

	if c.Processor.TimeoutSeconds <= 0 || c.Processor.TimeoutSeconds > MaxLambdaTimeoutSeconds {
		return errors.Newf("processor.timeout_seconds must be in 1..%d, got %d",
			MaxLambdaTimeoutSeconds, c.Processor.TimeoutSeconds)
	}
	// Polling blocks the invocation, so the budget has to fit inside it
	if c.Automation.MaxWaitSeconds >= c.Processor.TimeoutSeconds {
		return errors.WithHint(
			errors.Newf("automation.max_wait_seconds (%d) must be less than processor.timeout_seconds (%d)",
				c.Automation.MaxWaitSeconds, c.Processor.TimeoutSeconds),
			"lower max_wait_seconds or raise the function timeout")
	}
	if c.Processor.DLQRetentionDays < 1 || c.Processor.DLQRetentionDays > 14 {
		return errors.Newf("processor.dlq_retention_days must be in 1..14, got %d", c.Processor.DLQRetentionDays)
	}

	return nil
}
