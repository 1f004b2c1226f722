package command

const (
	LogLevelFlag        = "log-level"
	ConfigFlag          = "config"
	ConcurrencyFlag     = "concurrency"
	BlockRangeLimitFlag = "block-range-limit"
	MetricsFileFlag     = "metrics-file"
	DumpDirFlag         = "dump-dir"
)
