package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gnmyco/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gnmyco", cmd.Use,
		"Command name should be gnmyco")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
	assert.NotContains(t, output, "gnmyco version",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "gnmyco")
	assert.Contains(t, helpText, "MycoCosm")
	for _, v := range []string{"taxonomy", "fetch", "download", "export"} {
		assert.Contains(t, helpText, v, "Help should list %s command", v)
	}
}

func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE,
		"RunE should be set to handle version flag")
	assert.True(t, cmd.SilenceErrors, "Errors should be silenced")
	assert.True(t, cmd.SilenceUsage, "Usage should be silenced on errors")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err,
		"Should error on invalid command")
	output := buf.String()
	assert.True(t,
		strings.Contains(output, "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

func TestDownloadFlags(t *testing.T) {
	cmd := getDownloadCmd()
	tests := []struct {
		name, short, def string
	}{
		{"csv", "c", ""},
		{"xml", "x", ""},
		{"previous", "p", ""},
		{"exclude", "e", ""},
		{"use-restricted", "r", "false"},
		{"credentials", "j", ""},
		{"outputfolder", "o", "output"},
		{"simulate", "s", "false"},
		{"hardcoded", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.short, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestInputFlags(t *testing.T) {
	tests := []struct {
		msg     string
		args    []string
		csv, xm string
	}{
		{
			"defaults", nil,
			filepath.Join("output", "MycoCosm_Genome_list.csv"),
			filepath.Join("output", "MycoCosm_data.xml"),
		},
		{
			"output folder", []string{"-o", "/data/myco"},
			"/data/myco/MycoCosm_Genome_list.csv",
			"/data/myco/MycoCosm_data.xml",
		},
		{
			"explicit", []string{"-c", "list.csv", "-x", "data.xml"},
			"list.csv", "data.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			opts = nil
			cmd := getDownloadCmd()
			require.NoError(t, cmd.Flags().Parse(tt.args))
			inputFlags(cmd)

			c := config.New()
			c.Update(opts)
			assert.Equal(t, tt.csv, c.Download.GenomeListPath)
			assert.Equal(t, tt.xm, c.Download.ListingPath)
		})
	}
	opts = nil
}

func TestRestrictedFlag(t *testing.T) {
	opts = nil
	cmd := getDownloadCmd()
	require.NoError(t, cmd.Flags().Parse(nil))
	restrictedFlag(cmd)
	assert.Empty(t, opts, "unchanged flag keeps config value")

	require.NoError(t, cmd.Flags().Parse([]string{"-r"}))
	restrictedFlag(cmd)
	c := config.New()
	c.Update(opts)
	assert.True(t, c.Download.UseRestricted)
	opts = nil
}
