package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptPortalBaseURL sets the host used for file downloads.
func OptPortalBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Portal Base URL", s) {
			c.Portal.BaseURL = s
		}
	}
}

// OptPortalDownloadsURL sets the host that serves XML listings.
func OptPortalDownloadsURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Portal Downloads URL", s) {
			c.Portal.DownloadsURL = s
		}
	}
}

// OptPortalGenomeListURL sets the URL of the MycoCosm genome list.
func OptPortalGenomeListURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Portal Genome List URL", s) {
			c.Portal.GenomeListURL = s
		}
	}
}

// OptPortalSignonURL sets the login endpoint.
func OptPortalSignonURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Portal Signon URL", s) {
			c.Portal.SignonURL = s
		}
	}
}

// OptPortalTaxdumpURL sets the URL of the NCBI taxonomy dump.
func OptPortalTaxdumpURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Portal Taxdump URL", s) {
			c.Portal.TaxdumpURL = s
		}
	}
}

// OptPortalRetries sets the number of retries of HTTP requests.
func OptPortalRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Portal Retries", i) {
			c.Portal.Retries = i
		}
	}
}

// OptPortalCredentialsFile sets the file with JGI user and password.
// Runtime-only field - not in ToOptions().
func OptPortalCredentialsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Credentials File", s) {
			c.Portal.CredentialsFile = s
		}
	}
}

// OptDownloadSizeRatio sets the share of the expected size that makes a
// local file complete. Valid values are in (0, 1].
func OptDownloadSizeRatio(f float64) Option {
	return func(c *Config) {
		if f <= 0 || f > 1 {
			gn.Warn("<em>Download Size Ratio</em> has to be in (0, 1], "+
				"ignoring %v", f)
			return
		}
		c.Download.SizeRatio = f
	}
}

// OptDownloadUseRestricted includes restricted projects.
func OptDownloadUseRestricted(b bool) Option {
	return func(c *Config) {
		c.Download.UseRestricted = b
	}
}

// OptDownloadSimulate turns on a dry run.
// Runtime-only field - not in ToOptions().
func OptDownloadSimulate(b bool) Option {
	return func(c *Config) {
		c.Download.Simulate = b
	}
}

// OptDownloadOutputDir sets the root of the downloaded tree.
// Runtime-only field - not in ToOptions().
func OptDownloadOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Download.OutputDir = s
		}
	}
}

// OptDownloadGenomeListPath sets the path to the genome list CSV.
// Runtime-only field - not in ToOptions().
func OptDownloadGenomeListPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Genome List", s) {
			c.Download.GenomeListPath = s
		}
	}
}

// OptDownloadListingPath sets the path to the XML file listing.
// Runtime-only field - not in ToOptions().
func OptDownloadListingPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Listing", s) {
			c.Download.ListingPath = s
		}
	}
}

// OptDownloadExclusionsPath sets the path to the user exclusion list.
// Runtime-only field - not in ToOptions().
func OptDownloadExclusionsPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Exclusions", s) {
			c.Download.ExclusionsPath = s
		}
	}
}

// OptDownloadOverridesPath sets the path to hardcoded gene models files.
// Runtime-only field - not in ToOptions().
func OptDownloadOverridesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Overrides", s) {
			c.Download.OverridesPath = s
		}
	}
}

// OptDownloadPreviousPath sets the path to the prior-locations index.
// Runtime-only field - not in ToOptions().
func OptDownloadPreviousPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Previous Files", s) {
			c.Download.PreviousPath = s
		}
	}
}

// OptLineageNameFallback enables lookup of unknown taxon IDs by name.
func OptLineageNameFallback(b bool) Option {
	return func(c *Config) {
		c.Lineage.NameFallback = b
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per bulk insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
