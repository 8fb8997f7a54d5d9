package runner

import "time"

// Options are global brparser options
type Options struct {
	// Logging is logging options
	Logging Logging
	// Writer is result writer options
	Writer Writer
	// Parser is parsing options
	Parser Parser

	// DateFilter restricts report operations to newer results
	DateFilter *time.Time
}

// Logging is log related options
type Logging struct {
	// Debug display debug level logging
	Debug bool
	// LogScanErrors log errors related to scanning
	LogScanErrors bool
	// Silence all logging
	Silence bool
}

// Writer options
type Writer struct {
	UserPath    string
	WorkingPath string
	NoControlDb bool
	GlobalDbURI string
	Db          bool
	DbURI       string
	DbDebug     bool // enables verbose database logs
	Csv         bool
	CsvFile     string
	Jsonl       bool
	JsonlFile   string
	ELastic     bool
	ELasticURI  string
	Redis       bool
	RedisURI    string
	RedisKey    string
	Stdout      bool
	None        bool
}

// Parser is parsing related options
type Parser struct {
	// Path/file to be parsed
	Path string
	// Mapping is the YAML column mapping file for CSV inputs
	Mapping string
	// OutputPath receives transformed CSV copies
	OutputPath string
	// Threads are the number of goroutines to use
	Threads int
	// NearTextSize is how much surrounding text to keep per finding
	NearTextSize int
}

// NewDefaultOptions returns Options with some default values
func NewDefaultOptions() *Options {
	return &Options{
		Parser: Parser{
			Path:         "invalid",
			Threads:      6,
			NearTextSize: 120,
		},
		Logging: Logging{
			Debug:         true,
			LogScanErrors: true,
		},
	}
}
