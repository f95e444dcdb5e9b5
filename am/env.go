package am

import (
	"strconv"
	"strings"
)

// FunctionEnv returns the BDA_* variables that carry c's processing settings
// into the deployed function. Values the stack only knows as tokens (bucket
// name, blueprint and project ARNs) are added by the stack itself.
func (c *Config) FunctionEnv() map[string]string {
	env := map[string]string{
		"BDA_STORAGE_INPUT_PREFIX":             c.Storage.InputPrefix,
		"BDA_STORAGE_OUTPUT_PREFIX":            c.Storage.OutputPrefix,
		"BDA_STORAGE_SUPPORTED_EXTENSIONS":     strings.Join(c.Storage.SupportedExtensions, ","),
		"BDA_STORAGE_MAX_FILE_SIZE_MB":         strconv.Itoa(c.Storage.MaxFileSizeMB),
		"BDA_AUTOMATION_MAX_ATTEMPTS":          strconv.Itoa(c.Automation.MaxAttempts),
		"BDA_AUTOMATION_BACKOFF_SECONDS":       strconv.Itoa(c.Automation.BackoffSeconds),
		"BDA_AUTOMATION_POLL_INTERVAL_SECONDS": strconv.Itoa(c.Automation.PollIntervalSeconds),
		"BDA_AUTOMATION_MAX_WAIT_SECONDS":      strconv.Itoa(c.Automation.MaxWaitSeconds),
		"BDA_PROCESSOR_TIMEOUT_SECONDS":        strconv.Itoa(c.Processor.TimeoutSeconds),
		"BDA_PROCESSOR_PRODUCTION":             strconv.FormatBool(c.Processor.Production),
	}
	if c.Automation.ProfileID != "" {
		env["BDA_AUTOMATION_PROFILE_ID"] = c.Automation.ProfileID
	}
	if c.Automation.ProfileARN != "" {
		env["BDA_AUTOMATION_PROFILE_ARN"] = c.Automation.ProfileARN
	}
	return env
}
