// Package config provides configuration management for gnmyco.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Portal: base_url, downloads_url, genome_list_url, signon_url,
//     taxdump_url, retries
//   - Download: size_ratio, use_restricted
//   - Lineage: name_fallback
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Download.OutputDir, Simulate and the paths of input files
//   - Portal.CredentialsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNMYCO_ prefix with underscores for nesting:
//
//	GNMYCO_PORTAL_RETRIES=5
//	GNMYCO_DOWNLOAD_USE_RESTRICTED=false
//	GNMYCO_DATABASE_HOST=localhost
//	GNMYCO_LOG_LEVEL=info
//
// Portal credentials are never stored in the config, they come from
// JGI_USER and JGI_PASSWORD, a credentials file or a prompt.
package config

import (
	"runtime"
)

// Config represents the complete gnmyco configuration.
type Config struct {
	// Portal contains JGI endpoints and transfer settings.
	Portal PortalConfig `mapstructure:"portal" yaml:"portal"`

	// Download contains settings of the download command.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Lineage contains settings of taxonomic lineage resolution.
	Lineage LineageConfig `mapstructure:"lineage" yaml:"lineage"`

	// Database contains PostgreSQL connection settings for catalog export.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for taxonomy import.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// PortalConfig keeps JGI endpoints.
type PortalConfig struct {
	// BaseURL is prepended to file URLs from the listing.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DownloadsURL serves per-project XML listings.
	DownloadsURL string `mapstructure:"downloads_url" yaml:"downloads_url"`

	// GenomeListURL serves the MycoCosm genome list in CSV format.
	GenomeListURL string `mapstructure:"genome_list_url" yaml:"genome_list_url"`

	// SignonURL is the JGI login endpoint.
	SignonURL string `mapstructure:"signon_url" yaml:"signon_url"`

	// TaxdumpURL points to the NCBI taxonomy dump archive.
	TaxdumpURL string `mapstructure:"taxdump_url" yaml:"taxdump_url"`

	// Retries is the number of retries for each HTTP request.
	Retries int `mapstructure:"retries" yaml:"retries"`

	// CredentialsFile contains user name and password on two lines.
	// Runtime only.
	CredentialsFile string `mapstructure:"-" yaml:"-"`
}

// DownloadConfig contains settings of a download run.
type DownloadConfig struct {
	// SizeRatio is the share of the expected size a local file has to
	// exceed to be considered complete.
	SizeRatio float64 `mapstructure:"size_ratio" yaml:"size_ratio"`

	// UseRestricted includes projects with restricted data usage.
	UseRestricted bool `mapstructure:"use_restricted" yaml:"use_restricted"`

	// Simulate runs all decisions without copying or downloading files.
	Simulate bool `mapstructure:"-" yaml:"-"`

	// OutputDir is the root of the downloaded tree.
	OutputDir string `mapstructure:"-" yaml:"-"`

	// GenomeListPath is the MycoCosm genome list (CSV).
	GenomeListPath string `mapstructure:"-" yaml:"-"`

	// ListingPath is the combined XML file listing.
	ListingPath string `mapstructure:"-" yaml:"-"`

	// ExclusionsPath lists project codes to skip, one per line.
	ExclusionsPath string `mapstructure:"-" yaml:"-"`

	// OverridesPath maps project codes to gene models files.
	OverridesPath string `mapstructure:"-" yaml:"-"`

	// PreviousPath is the prior-locations index.
	PreviousPath string `mapstructure:"-" yaml:"-"`
}

// LineageConfig contains settings of lineage resolution.
type LineageConfig struct {
	// NameFallback enables lookup by canonical organism name when a
	// taxon ID is unknown to the taxonomy.
	NameFallback bool `mapstructure:"name_fallback" yaml:"name_fallback"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per bulk insert.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

const genomeListURL = "https://mycocosm.jgi.doe.gov/ext-api/mycocosm/" +
	"catalog/download-group?flt=&seq=all&pub=all&grp=fungi" +
	"&srt=released&ord=asc"

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Portal: PortalConfig{
			BaseURL:       "https://genome.jgi.doe.gov",
			DownloadsURL:  "https://genome-downloads.jgi.doe.gov",
			GenomeListURL: genomeListURL,
			SignonURL:     "https://signon.jgi.doe.gov/signon/create",
			TaxdumpURL:    "https://ftp.ncbi.nlm.nih.gov/pub/taxonomy/taxdump.tar.gz",
			Retries:       5,
		},
		Download: DownloadConfig{
			SizeRatio: 0.9,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "mycocosm",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
