package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	// Isolated viper instance: no user/system config files, no environment
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, "ap-south-1", cfg.AWS.Region)
	assert.Equal(t, "input/", cfg.Storage.InputPrefix)
	assert.Equal(t, "output/", cfg.Storage.OutputPrefix)
	assert.Equal(t, []string{".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg"}, cfg.Storage.SupportedExtensions)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxFileSizeBytes())
	assert.Equal(t, 3, cfg.Automation.MaxAttempts)
	assert.Equal(t, "1s", cfg.Automation.Backoff().String())
	assert.Equal(t, "10s", cfg.Automation.PollInterval().String())
	assert.Equal(t, "5m0s", cfg.Automation.MaxWait().String())
	assert.Equal(t, "LIVE", cfg.Automation.TargetStage)
	assert.Equal(t, "BDAResumeStack", cfg.Stack.Name)
	assert.NoError(t, cfg.Validate())
}

func TestBindEnvVars_LambdaNames(t *testing.T) {
	t.Setenv("BUCKET_NAME", "bda-resume-processing-123")
	t.Setenv("BLUEPRINT_ARN", "arn:aws:bedrock:ap-south-1:123:blueprint/abc")
	t.Setenv("PROJECT_ARN", "arn:aws:bedrock:ap-south-1:123:data-automation-project/def")

	v := viper.New()
	BindEnvVars(v)
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "bda-resume-processing-123", cfg.Storage.Bucket)
	assert.Equal(t, "arn:aws:bedrock:ap-south-1:123:blueprint/abc", cfg.Automation.BlueprintARN)
	assert.Equal(t, "arn:aws:bedrock:ap-south-1:123:data-automation-project/def", cfg.Automation.ProjectARN)
}

func TestFunctionEnv_RoundTrip(t *testing.T) {
	deployed := defaultConfig(t)
	deployed.Processor.TimeoutSeconds = 120
	deployed.Automation.MaxWaitSeconds = 100
	deployed.Automation.MaxAttempts = 2
	deployed.Automation.BackoffSeconds = 3
	deployed.Automation.PollIntervalSeconds = 5
	deployed.Automation.ProfileARN = "arn:aws:bedrock:ap-south-1:123:data-automation-profile/custom"
	deployed.Storage.SupportedExtensions = []string{".pdf", ".docx"}
	deployed.Storage.MaxFileSizeMB = 4

	for k, v := range deployed.FunctionEnv() {
		t.Setenv(k, v)
	}
	cfg, err := LoadWithViper(newEnvViper())
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Processor.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Automation.MaxWaitSeconds)
	assert.Equal(t, 2, cfg.Automation.MaxAttempts)
	assert.Equal(t, 3, cfg.Automation.BackoffSeconds)
	assert.Equal(t, 5, cfg.Automation.PollIntervalSeconds)
	assert.Equal(t, deployed.Automation.ProfileARN, cfg.Automation.ProfileARN)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.Storage.SupportedExtensions)
	assert.Equal(t, int64(4*1024*1024), cfg.Storage.MaxFileSizeBytes())
	assert.NoError(t, cfg.Validate())
}

func TestFunctionEnv_BudgetCheckedAgainstDeployedTimeout(t *testing.T) {
	deployed := defaultConfig(t)
	deployed.Processor.TimeoutSeconds = 120

	for k, v := range deployed.FunctionEnv() {
		t.Setenv(k, v)
	}
	cfg, err := LoadWithViper(newEnvViper())
	require.NoError(t, err)

	// default 300s budget no longer fits
	assert.Error(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	content := `
[storage]
bucket = "resumes"
max_file_size_mb = 25

[automation]
max_attempts = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFilePermissions))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "resumes", cfg.Storage.Bucket)
	assert.Equal(t, 25, cfg.Storage.MaxFileSizeMB)
	assert.Equal(t, 5, cfg.Automation.MaxAttempts)
	// untouched keys keep defaults
	assert.Equal(t, 300, cfg.Automation.MaxWaitSeconds)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero max wait is valid", mutate: func(c *Config) { c.Automation.MaxWaitSeconds = 0 }},
		{name: "zero size limit is valid", mutate: func(c *Config) { c.Storage.MaxFileSizeMB = 0 }},
		{name: "zero attempts", mutate: func(c *Config) { c.Automation.MaxAttempts = 0 }, wantErr: true},
		{name: "attempts at cap", mutate: func(c *Config) { c.Automation.MaxAttempts = MaxAttempts }},
		{name: "attempts above cap", mutate: func(c *Config) { c.Automation.MaxAttempts = 40 }, wantErr: true},
		{name: "zero poll interval", mutate: func(c *Config) { c.Automation.PollIntervalSeconds = 0 }, wantErr: true},
		{name: "empty input prefix", mutate: func(c *Config) { c.Storage.InputPrefix = "" }, wantErr: true},
		{name: "output under input", mutate: func(c *Config) { c.Storage.OutputPrefix = "input/out/" }, wantErr: true},
		{name: "extension without dot", mutate: func(c *Config) { c.Storage.SupportedExtensions = []string{"pdf"} }, wantErr: true},
		{name: "wait budget exceeds function timeout", mutate: func(c *Config) {
			c.Processor.TimeoutSeconds = 300
			c.Automation.MaxWaitSeconds = 300
		}, wantErr: true},
		{name: "timeout above lambda maximum", mutate: func(c *Config) { c.Processor.TimeoutSeconds = 901 }, wantErr: true},
		{name: "dlq retention above 14 days", mutate: func(c *Config) { c.Processor.DLQRetentionDays = 15 }, wantErr: true},
		{name: "empty target stage", mutate: func(c *Config) { c.Automation.TargetStage = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
