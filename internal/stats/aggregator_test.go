package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

func buildRecord(t *testing.T, reg *property.Registry, tags ...record.Tag) *record.MetadataRecord {
	t.Helper()
	b := record.NewBuilder(reg)
	return b.Build("x.jpg", []record.TagGroup{{Name: "Exif IFD0", Tags: tags}},
		record.FileDefaults{
			Timestamp: time.Date(2023, 4, 1, 0, 0, 0, 0, time.Local),
			Extension: "jpg",
			BaseName:  "x",
			Size:      100,
		})
}

func TestAggregateCounts(t *testing.T) {
	reg := property.NewRegistry()
	agg := New(reg)

	for _, mk := range []string{"Sony", "Sony", "Canon"} {
		agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "Make", Value: mk}))
	}

	report := agg.Report()
	sections := strings.SplitN(report, divider+"\n", 2)
	require.Len(t, sections, 2)

	assert.Contains(t, sections[0], "Make\tSony\t2")
	assert.Contains(t, sections[0], "Make\tCanon\t1")
	// Singletons are ranked in section 1 but omitted from the full listing.
	assert.Contains(t, sections[1], "Make\tSony\t2")
	assert.NotContains(t, sections[1], "Canon")
}

func TestAggregateUsesRawValueKey(t *testing.T) {
	reg := property.NewRegistry()
	agg := New(reg)

	// Two raw spellings that render to the same file-safe value must count
	// as distinct buckets.
	agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "F-Number", Value: "f/2.8"}))
	agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "F-Number", Value: "2.8"}))

	report := agg.Report()
	assert.Contains(t, report, "F-Number\tf/2.8\t1")
	assert.Contains(t, report, "F-Number\t2.8\t1")
}

func TestAggregateExcludedCodes(t *testing.T) {
	reg := property.NewRegistry()
	agg := New(reg)

	// Every record carries date, filename, and size via defaults; none of
	// them may surface in the report.
	for i := 0; i < 3; i++ {
		agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "Make", Value: "Sony"}))
	}

	report := agg.Report()
	assert.NotContains(t, report, "Date/Time")
	assert.NotContains(t, report, "File Name")
	assert.NotContains(t, report, "File Size")
	// Non-excluded defaults (extension, detected type) do count.
	assert.Contains(t, report, "Extension\tjpg\t3")
}

func TestReportTopTenRanking(t *testing.T) {
	reg := property.NewRegistry()
	agg := New(reg)

	for i := 0; i < 5; i++ {
		agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "Make", Value: "Sony"}))
	}
	for i := 0; i < 5; i++ {
		agg.Aggregate(buildRecord(t, reg, record.Tag{Name: "Software", Value: "darktable"}))
	}

	report := agg.Report()
	top := strings.Split(strings.SplitN(report, divider+"\n", 2)[0], "\n")

	// Extension and type defaults appear in all 10 records (count 10), then
	// the two count-5 buckets tied: "mk" sorts before "sw" by code even
	// though Make < Software would also hold by name.
	var idxMake, idxSoftware int
	for i, line := range top {
		if strings.HasPrefix(line, "Make\t") {
			idxMake = i
		}
		if strings.HasPrefix(line, "Software\t") {
			idxSoftware = i
		}
	}
	assert.Less(t, idxMake, idxSoftware)
}

func TestReportFullListingOrder(t *testing.T) {
	reg := property.NewRegistry()
	agg := New(reg)

	for i := 0; i < 2; i++ {
		agg.Aggregate(buildRecord(t, reg,
			record.Tag{Name: "Software", Value: "darktable"},
			record.Tag{Name: "Make", Value: "Sony"},
		))
	}

	full := strings.SplitN(agg.Report(), divider+"\n", 2)[1]
	lines := strings.Split(strings.TrimSpace(full), "\n")

	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, strings.SplitN(l, "\t", 2)[0])
	}
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "Make")
	assert.Contains(t, names, "Software")
}
