package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/introeval/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultDurationSec, convey.ShouldEqual, 52)
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("INTROEVAL_ADDR", ":9090")
			_ = os.Setenv("INTROEVAL_LOG_FORMAT", "json")
			_ = os.Setenv("INTROEVAL_DEFAULT_DURATION_SEC", "60")
			_ = os.Setenv("INTROEVAL_BATCH_WORKERS", "16")
			_ = os.Setenv("INTROEVAL_MAX_BATCH_SIZE", "25")
			_ = os.Setenv("INTROEVAL_MAX_TRANSCRIPT_BYTES", "4096")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DefaultDurationSec, convey.ShouldEqual, 60)
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 16)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 25)
				convey.So(cfg.MaxTranscriptBytes, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# Evaluator settings
addr: ":7070"  # Inline comment
log_level: debug
default_duration_sec: 45
batch_workers: 3
request_timeout_ms: 2500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTROEVAL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults elsewhere", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefaultDurationSec, convey.ShouldEqual, 45)
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 100) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
batch_workers: 3
max_batch_size: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTROEVAL_CONFIG", tmpFile)
			_ = os.Setenv("INTROEVAL_ADDR", ":8081")      // This should override the file
			_ = os.Setenv("INTROEVAL_BATCH_WORKERS", "32") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")    // Overridden by env
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 32) // Overridden by env
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 10) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTROEVAL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("INTROEVAL_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("INTROEVAL_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive default duration", func() {
			_ = os.Setenv("INTROEVAL_DEFAULT_DURATION_SEC", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("INTROEVAL_BATCH_WORKERS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"INTROEVAL_CONFIG",
		"INTROEVAL_ADDR",
		"INTROEVAL_LOG_LEVEL",
		"INTROEVAL_LOG_FORMAT",
		"INTROEVAL_DEFAULT_DURATION_SEC",
		"INTROEVAL_MAX_TRANSCRIPT_BYTES",
		"INTROEVAL_BATCH_WORKERS",
		"INTROEVAL_MAX_BATCH_SIZE",
		"INTROEVAL_REQUEST_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "introeval-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
