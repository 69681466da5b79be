package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gnmyco/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnmyco"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gnmyco"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnmyco", "logs"),
		},
		{
			msg: "rules file",
			fn:  config.RulesFilePath,
			res: filepath.Join(tempHome, ".config", "gnmyco", "rules.yaml"),
		},
		{
			msg: "taxonomy db",
			fn:  config.TaxonomyDBPath,
			res: filepath.Join(tempHome, ".cache", "gnmyco", "taxonomy.sqlite"),
		},
		{
			msg: "previous files",
			fn:  config.PreviousFilePath,
			res: filepath.Join(tempHome, ".config", "gnmyco",
				"previously_downloaded_files.tsv"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "https://genome.jgi.doe.gov", cfg.Portal.BaseURL)
		assert.Contains(t, cfg.Portal.GenomeListURL, "grp=fungi")
		assert.Equal(t, 5, cfg.Portal.Retries)

		assert.Equal(t, 0.9, cfg.Download.SizeRatio)
		assert.False(t, cfg.Download.UseRestricted)
		assert.False(t, cfg.Download.Simulate)
		assert.False(t, cfg.Lineage.NameFallback)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "mycocosm", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionPortalURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid url",
			input:    "https://example.org",
			expected: "https://example.org",
		},
		{
			name:     "trims slash and spaces",
			input:    "  http://localhost:8080/ ",
			expected: "http://localhost:8080",
		},
		{
			name:     "ignores url without scheme",
			input:    "example.org",
			expected: "https://genome.jgi.doe.gov",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "https://genome.jgi.doe.gov",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptPortalBaseURL(tt.input)})
			assert.Equal(t, tt.expected, cfg.Portal.BaseURL)
		})
	}
}

func TestOptionSizeRatio(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"sets valid ratio", 0.5, 0.5},
		{"accepts one", 1, 1},
		{"ignores zero", 0, 0.9},
		{"ignores negative", -0.1, 0.9},
		{"ignores more than one", 1.5, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDownloadSizeRatio(tt.input)})
			assert.Equal(t, tt.expected, cfg.Download.SizeRatio)
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(int) config.Option
		input int
		get   func(*config.Config) int
		res   int
	}{
		{"retries", config.OptPortalRetries, 3,
			func(c *config.Config) int { return c.Portal.Retries }, 3},
		{"retries zero", config.OptPortalRetries, 0,
			func(c *config.Config) int { return c.Portal.Retries }, 5},
		{"port", config.OptDatabasePort, 3306,
			func(c *config.Config) int { return c.Database.Port }, 3306},
		{"port negative", config.OptDatabasePort, -100,
			func(c *config.Config) int { return c.Database.Port }, 5432},
		{"batch size", config.OptDatabaseBatchSize, 100,
			func(c *config.Config) int { return c.Database.BatchSize }, 100},
		{"jobs", config.OptJobsNumber, 2,
			func(c *config.Config) int { return c.JobsNumber }, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestOptionEnums(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(string) config.Option
		input string
		get   func(*config.Config) string
		res   string
	}{
		{"ssl mode", config.OptDatabaseSSLMode, "REQUIRE",
			func(c *config.Config) string { return c.Database.SSLMode }, "require"},
		{"bad ssl mode", config.OptDatabaseSSLMode, "invalid",
			func(c *config.Config) string { return c.Database.SSLMode }, "disable"},
		{"log level", config.OptLogLevel, "debug",
			func(c *config.Config) string { return c.Log.Level }, "debug"},
		{"bad log level", config.OptLogLevel, "trace",
			func(c *config.Config) string { return c.Log.Level }, "info"},
		{"log format", config.OptLogFormat, "text",
			func(c *config.Config) string { return c.Log.Format }, "text"},
		{"bad log format", config.OptLogFormat, "xml",
			func(c *config.Config) string { return c.Log.Format }, "json"},
		{"log destination", config.OptLogDestination, "stderr",
			func(c *config.Config) string { return c.Log.Destination }, "stderr"},
		{"bad log destination", config.OptLogDestination, "stdin",
			func(c *config.Config) string { return c.Log.Destination }, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestRuntimeOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(" /home/user "),
		config.OptDownloadOutputDir("out"),
		config.OptDownloadSimulate(true),
		config.OptDownloadGenomeListPath("list.csv"),
		config.OptDownloadListingPath("listing.xml"),
		config.OptDownloadExclusionsPath("exclude.txt"),
		config.OptDownloadOverridesPath("gff.tsv"),
		config.OptDownloadPreviousPath("prev.tsv"),
		config.OptPortalCredentialsFile("creds"),
		config.OptDownloadOutputDir(""),
	})
	assert.Equal(t, "/home/user", cfg.HomeDir)
	assert.Equal(t, "out", cfg.Download.OutputDir)
	assert.True(t, cfg.Download.Simulate)
	assert.Equal(t, "list.csv", cfg.Download.GenomeListPath)
	assert.Equal(t, "listing.xml", cfg.Download.ListingPath)
	assert.Equal(t, "exclude.txt", cfg.Download.ExclusionsPath)
	assert.Equal(t, "gff.tsv", cfg.Download.OverridesPath)
	assert.Equal(t, "prev.tsv", cfg.Download.PreviousPath)
	assert.Equal(t, "creds", cfg.Portal.CredentialsFile)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptPortalRetries(2),
		config.OptDownloadSizeRatio(0.75),
		config.OptDownloadUseRestricted(true),
		config.OptLineageNameFallback(true),
		config.OptDatabaseHost("db.example.org"),
		config.OptLogLevel("warn"),
		config.OptJobsNumber(3),
		config.OptHomeDir("/tmp/home"),
		config.OptDownloadSimulate(true),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, 2, dst.Portal.Retries)
	assert.Equal(t, 0.75, dst.Download.SizeRatio)
	assert.True(t, dst.Download.UseRestricted)
	assert.True(t, dst.Lineage.NameFallback)
	assert.Equal(t, "db.example.org", dst.Database.Host)
	assert.Equal(t, "warn", dst.Log.Level)
	assert.Equal(t, 3, dst.JobsNumber)

	// runtime fields do not round trip
	assert.Empty(t, dst.HomeDir)
	assert.False(t, dst.Download.Simulate)
}
