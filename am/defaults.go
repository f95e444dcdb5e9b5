package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// AWS
	v.SetDefault("aws.region", "ap-south-1")
	v.SetDefault("aws.profile", "default")

	// Storage layout
	v.SetDefault("storage.input_prefix", "input/")
	v.SetDefault("storage.output_prefix", "output/")
	v.SetDefault("storage.supported_extensions", []string{".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg"})
	v.SetDefault("storage.max_file_size_mb", 10)

	// Bedrock Data Automation
	v.SetDefault("automation.profile_id", "apac.data-automation-v1")
	v.SetDefault("automation.max_attempts", 3)
	v.SetDefault("automation.backoff_seconds", 1)
	v.SetDefault("automation.poll_interval_seconds", 10)
	v.SetDefault("automation.max_wait_seconds", 300)
	v.SetDefault("automation.target_stage", "LIVE")

	// Processor function
	v.SetDefault("processor.timeout_seconds", MaxLambdaTimeoutSeconds)
	v.SetDefault("processor.memory_mb", 1024)
	v.SetDefault("processor.asset_path", "dist/processor")
	v.SetDefault("processor.dlq_retention_days", 14)
	v.SetDefault("processor.production", false)

	// Stack
	v.SetDefault("stack.name", "BDAResumeStack")
	v.SetDefault("stack.schema_source", "schemas/resume_blueprint.json")
	v.SetDefault("stack.outputs_file", "bda-outputs.toml")

	// Local state
	v.SetDefault("database.path", "bda.db")
	v.SetDefault("results.dir", "results")
}

// BindEnvVars binds the environment names the provisioned function receives.
// BDA_* names work everywhere through AutomaticEnv.
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("aws.region", "BDA_AWS_REGION", "AWS_REGION")
	v.BindEnv("aws.profile", "BDA_AWS_PROFILE", "AWS_PROFILE")

	v.BindEnv("storage.bucket", "BDA_STORAGE_BUCKET", "BUCKET_NAME")
	v.BindEnv("storage.input_prefix", "BDA_STORAGE_INPUT_PREFIX", "INPUT_PREFIX")
	v.BindEnv("storage.output_prefix", "BDA_STORAGE_OUTPUT_PREFIX", "OUTPUT_PREFIX")

	v.BindEnv("automation.blueprint_arn", "BDA_AUTOMATION_BLUEPRINT_ARN", "BLUEPRINT_ARN")
	v.BindEnv("automation.project_arn", "BDA_AUTOMATION_PROJECT_ARN", "PROJECT_ARN")
	v.BindEnv("automation.profile_arn", "BDA_AUTOMATION_PROFILE_ARN", "PROFILE_ARN")

	v.BindEnv("processor.production", "BDA_PROCESSOR_PRODUCTION", "PRODUCTION")
}
