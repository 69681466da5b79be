package listing_test

import (
	"testing"
	"time"

	"github.com/gnames/gnmyco/pkg/listing"
	"github.com/gnames/gnmyco/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	zones := rules.Default().TimeZones

	tests := []struct {
		msg   string
		input string
		utc   string
		isErr bool
	}{
		{"pdt", "Sun Oct 12 11:02:03 PDT 2014", "2014-10-12T18:02:03Z", false},
		{"pst", "Tue Jan 06 23:30:00 PST 2015", "2015-01-07T07:30:00Z", false},
		{"edt", "Fri Jul 01 00:00:00 EDT 2016", "2016-07-01T04:00:00Z", false},
		{"one digit day", "Wed Mar 1 10:00:00 CST 2017", "2017-03-01T16:00:00Z", false},
		{"extra spaces", "Wed  Mar  1 10:00:00 CST 2017", "2017-03-01T16:00:00Z", false},
		{"unknown zone", "Sun Oct 12 11:02:03 GMT 2014", "", true},
		{"unknown month", "Sun Okt 12 11:02:03 PDT 2014", "", true},
		{"unknown weekday", "Son Oct 12 11:02:03 PDT 2014", "", true},
		{"wrong weekday", "Mon Oct 12 11:02:03 PDT 2014", "2014-10-12T18:02:03Z", false},
		{"bad day", "Sun Feb 30 11:02:03 PDT 2014", "", true},
		{"bad clock", "Sun Oct 12 11:02 PDT 2014", "", true},
		{"too short", "Sun Oct 12 2014", "", true},
		{"empty", "", "", true},
	}

	for _, v := range tests {
		res, err := listing.ParseTimestamp(v.input, zones)
		if v.isErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.utc, res.UTC().Format(time.RFC3339), v.msg)
	}
}

func TestParseTimestampZone(t *testing.T) {
	zones := rules.Default().TimeZones
	res, err := listing.ParseTimestamp("Sun Oct 12 11:02:03 PDT 2014", zones)
	require.NoError(t, err)
	name, off := res.Zone()
	assert.Equal(t, "PDT", name)
	assert.Equal(t, -7*3600, off)
	assert.Equal(t, 11, res.Hour())
}
