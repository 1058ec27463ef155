package config

const (
	// DefaultConfigName is looked up in the working directory as <name>.yaml.
	DefaultConfigName = "qawash"

	// EnvPrefix prefixes every environment variable, e.g. QAWASH_OUTPUT_FORMAT.
	EnvPrefix = "QAWASH"

	DefaultInputFormat   = "xlsx"
	DefaultOutputFormat  = "csv"
	DefaultFinalSuffix   = "FINAL"
	DefaultAggregateName = "final"
	DefaultLogLevel      = "info"

	// DefaultWatchSchedule re-washes the working directory every 10 minutes.
	DefaultWatchSchedule = "*/10 * * * *"
)
