// Package am holds the bdaresume configuration ("I am").
//
// Values come from defaults, TOML files, BDA_* environment variables, and the
// plain environment names the provisioned Lambda function is given
// (BUCKET_NAME, BLUEPRINT_ARN, PROJECT_ARN, ...).
package am

import "time"

// Config represents the complete bdaresume configuration
type Config struct {
	AWS        AWSConfig        `mapstructure:"aws"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Automation AutomationConfig `mapstructure:"automation"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
	Stack      StackConfig      `mapstructure:"stack"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Results    ResultsConfig    `mapstructure:"results"`
}

// AWSConfig selects region and the named credentials profile.
// The profile is ignored when a binary runs with host-assigned identity.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// StorageConfig describes the resume bucket layout
type StorageConfig struct {
	Bucket              string   `mapstructure:"bucket"`
	InputPrefix         string   `mapstructure:"input_prefix"`  // only keys under this prefix are processed
	OutputPrefix        string   `mapstructure:"output_prefix"` // results land under <output_prefix><base>/
	SupportedExtensions []string `mapstructure:"supported_extensions"`
	MaxFileSizeMB       int      `mapstructure:"max_file_size_mb"`
}

// AutomationConfig configures Bedrock Data Automation calls
type AutomationConfig struct {
	BlueprintARN        string `mapstructure:"blueprint_arn"`
	ProjectARN          string `mapstructure:"project_arn"`
	ProfileARN          string `mapstructure:"profile_arn"` // empty = derived from account and ProfileID
	ProfileID           string `mapstructure:"profile_id"`  // e.g. apac.data-automation-v1
	MaxAttempts         int    `mapstructure:"max_attempts"`
	BackoffSeconds      int    `mapstructure:"backoff_seconds"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
	MaxWaitSeconds      int    `mapstructure:"max_wait_seconds"`
	TargetStage         string `mapstructure:"target_stage"`
}

// ProcessorConfig sizes the Lambda function
type ProcessorConfig struct {
	FunctionName     string `mapstructure:"function_name"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	MemoryMB         int    `mapstructure:"memory_mb"`
	AssetPath        string `mapstructure:"asset_path"` // directory holding the bootstrap binary
	DLQRetentionDays int    `mapstructure:"dlq_retention_days"`
	Production       bool   `mapstructure:"production"`
}

// StackConfig names the deployed infrastructure stack
type StackConfig struct {
	Name         string `mapstructure:"name"`
	Account      string `mapstructure:"account"`
	SchemaSource string `mapstructure:"schema_source"` // go-getter source for the blueprint schema
	OutputsFile  string `mapstructure:"outputs_file"`  // TOML cache written by `bda outputs save`
}

// DatabaseConfig configures the local job ledger
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ResultsConfig configures where fetched results are written locally
type ResultsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Lambda allows at most 15 minutes per invocation
const MaxLambdaTimeoutSeconds = 900

// MaxAttempts bounds automation.max_attempts
const MaxAttempts = 10

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Backoff returns the base retry delay
func (c AutomationConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds) * time.Second
}

// PollInterval returns the fixed delay between status queries
func (c AutomationConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// MaxWait returns the polling budget
func (c AutomationConfig) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitSeconds) * time.Second
}

// MaxFileSizeBytes returns the upload/processing size limit
func (c StorageConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
