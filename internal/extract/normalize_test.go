package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		key      string
		value    string
		wantName string
		wantVal  string
		wantOK   bool
	}{
		{key: "Make", value: "Sony", wantName: "Make", wantVal: "Sony", wantOK: true},
		{key: "ISO", value: "3200", wantName: "ISO Speed Ratings", wantVal: "3200", wantOK: true},
		{key: "ISOSpeedRatings", value: "3200", wantName: "ISO Speed Ratings", wantVal: "3200", wantOK: true},
		{key: "FNumber", value: "28/10", wantName: "F-Number", wantVal: "2.8", wantOK: true},
		{key: "FocalLength", value: "206/1", wantName: "Focal Length", wantVal: "206", wantOK: true},
		// Exposure fractions are meaningful and must survive untouched.
		{key: "ExposureTime", value: "1/250", wantName: "Exposure Time", wantVal: "1/250", wantOK: true},
		{key: "PixelXDimension", value: "4000", wantName: "Image Width", wantVal: "4000", wantOK: true},
		{key: "SomeVendorNote", value: "x", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			tag, ok := normalizeTag(tc.key, tc.value)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantName, tag.Name)
				assert.Equal(t, tc.wantVal, tag.Value)
			}
		})
	}
}

func TestCollapseRational(t *testing.T) {
	assert.Equal(t, "2.8", collapseRational("28/10"))
	assert.Equal(t, "72", collapseRational("72/1"))
	assert.Equal(t, "2.8", collapseRational("2.8"), "non-rational passes through")
	assert.Equal(t, "1/0", collapseRational("1/0"), "zero denominator passes through")
}

func TestStringifyField(t *testing.T) {
	assert.Equal(t, "Sony", stringifyField("Sony"))
	assert.Equal(t, "24", stringifyField(float64(24.0)))
	assert.Equal(t, "2.8", stringifyField(float64(2.8)))
	assert.Equal(t, "", stringifyField(nil))
}
