package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/washer"
)

type (
	Config struct {
		Input
		Output
		Washing
		Audit
		Database
		Log
		Watch
	}

	Input struct {
		Format      string `validate:"required,input_format"`
		Dir         string `validate:"required"` // Directory scanned for source files
		Sheet       string // xlsx worksheet, first sheet when empty
		SQLiteQuery string // Query run against sqlite sources
	}
	Output struct {
		Format        string `validate:"required,output_format"`
		Dir           string // Empty writes next to each source file
		Finalize      bool   // Only write final snapshots (plus the aggregate)
		SingleFile    bool   // Only write the aggregate
		FinalSuffix   string `validate:"oneof=FINAL fake"`
		AggregateName string
	}
	Washing struct {
		Keywords        []string
		SanitizePhrases []string
		TruncateLimit   int      `validate:"gte=0"`
		AttentionChecks []string `validate:"dive,attention_check"` // "position:answer"
	}
	Audit struct {
		Dir string // Empty disables JSON evidence files
	}
	Database struct {
		HistoryPath   string // Empty disables the run history
		RetentionDays int    `validate:"gte=0"` // Runs older than this are pruned, 0 keeps all
	}
	Log struct {
		Level string `validate:"oneof=trace debug info warn error"`
	}
	Watch struct {
		Schedule string `validate:"required,cron_schedule"`
	}
)

// Load reads configuration from defaults, an optional YAML file and
// QAWASH_* environment variables, in increasing priority. configFile may be
// empty, in which case ./qawash.yaml is used when present.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_format", DefaultInputFormat)
	v.SetDefault("input_dir", ".")
	v.SetDefault("sheet", "")
	v.SetDefault("sqlite_query", "")

	v.SetDefault("output_format", DefaultOutputFormat)
	v.SetDefault("output_dir", "")
	v.SetDefault("finalize", false)
	v.SetDefault("single_file", false)
	v.SetDefault("final_suffix", DefaultFinalSuffix)
	v.SetDefault("aggregate_name", DefaultAggregateName)

	v.SetDefault("keywords", washer.DefaultExclusionKeywords)
	v.SetDefault("sanitize_phrases", washer.DefaultBoilerplate)
	v.SetDefault("truncate_limit", washer.DefaultTruncateLimit)
	v.SetDefault("attention_checks", FormatAttentionChecks(washer.DefaultAttentionChecks))

	v.SetDefault("audit_dir", "")
	v.SetDefault("history_db", "")
	v.SetDefault("history_retention_days", 0)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("schedule", DefaultWatchSchedule)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Input: Input{
			Format:      v.GetString("input_format"),
			Dir:         v.GetString("input_dir"),
			Sheet:       v.GetString("sheet"),
			SQLiteQuery: v.GetString("sqlite_query"),
		},
		Output: Output{
			Format:        v.GetString("output_format"),
			Dir:           v.GetString("output_dir"),
			Finalize:      v.GetBool("finalize"),
			SingleFile:    v.GetBool("single_file"),
			FinalSuffix:   v.GetString("final_suffix"),
			AggregateName: v.GetString("aggregate_name"),
		},
		Washing: Washing{
			Keywords:        v.GetStringSlice("keywords"),
			SanitizePhrases: v.GetStringSlice("sanitize_phrases"),
			TruncateLimit:   v.GetInt("truncate_limit"),
			AttentionChecks: v.GetStringSlice("attention_checks"),
		},
		Audit: Audit{
			Dir: v.GetString("audit_dir"),
		},
		Database: Database{
			HistoryPath:   v.GetString("history_db"),
			RetentionDays: v.GetInt("history_retention_days"),
		},
		Log: Log{
			Level: strings.ToLower(v.GetString("log_level")),
		},
		Watch: Watch{
			Schedule: v.GetString("schedule"),
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("input_format", func(fl validator.FieldLevel) bool {
		_, err := formats.ParseInput(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("output_format", func(fl validator.FieldLevel) bool {
		_, err := formats.ParseOutput(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("attention_check", func(fl validator.FieldLevel) bool {
		_, err := ParseAttentionCheck(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("cron_schedule", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the resolved configuration. Unknown format names are
// reported as formats.ErrUnsupportedFormat.
func (c *Config) Validate() error {
	if _, err := formats.ParseInput(c.Input.Format); err != nil {
		return err
	}
	if _, err := formats.ParseOutput(c.Output.Format); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// InputFormat returns the parsed input format. Call after Validate.
func (c *Config) InputFormat() formats.Input {
	in, _ := formats.ParseInput(c.Input.Format)
	return in
}

// OutputFormat returns the parsed output format. Call after Validate.
func (c *Config) OutputFormat() formats.Output {
	out, _ := formats.ParseOutput(c.Output.Format)
	return out
}

// WashOptions returns the washer constants described by the configuration.
func (c *Config) WashOptions() washer.Options {
	checks := make([]washer.AttentionCheck, 0, len(c.AttentionChecks))
	for _, s := range c.AttentionChecks {
		if check, err := ParseAttentionCheck(s); err == nil {
			checks = append(checks, check)
		}
	}
	return washer.Options{
		Boilerplate:   c.SanitizePhrases,
		Keywords:      c.Keywords,
		TruncateLimit: c.TruncateLimit,
		Checks:        checks,
		FinalSuffix:   entities.Suffix(c.FinalSuffix),
	}
}

// ParseAttentionCheck parses "position:answer", e.g. "39:4".
func ParseAttentionCheck(s string) (washer.AttentionCheck, error) {
	pos, answer, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || answer == "" {
		return washer.AttentionCheck{}, fmt.Errorf("attention check %q: expected position:answer", s)
	}
	position, err := strconv.Atoi(pos)
	if err != nil || position < 0 {
		return washer.AttentionCheck{}, fmt.Errorf("attention check %q: invalid position", s)
	}
	return washer.AttentionCheck{Position: position, Answer: answer}, nil
}

// FormatAttentionChecks renders checks in the form ParseAttentionCheck reads.
func FormatAttentionChecks(checks []washer.AttentionCheck) []string {
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = fmt.Sprintf("%d:%s", c.Position, c.Answer)
	}
	return out
}
