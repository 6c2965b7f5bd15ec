package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

var testDefaults = FileDefaults{
	Timestamp: time.Date(2023, 4, 1, 12, 0, 0, 0, time.Local),
	Extension: ".JPG",
	BaseName:  "DSC01234",
	Size:      2482348,
}

func group(name string, tags ...Tag) TagGroup {
	return TagGroup{Name: name, Tags: tags}
}

func TestBuildBasic(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	rec := b.Build("/photos/DSC01234.JPG", []TagGroup{
		group("Exif IFD0",
			Tag{Name: "Make", Value: "Sony"},
			Tag{Name: "Model", Value: "ILCE-7M3"},
			Tag{Name: "ISO Speed Ratings", Value: "3200"},
		),
	}, testDefaults)

	mk, ok := rec.Lookup("mk")
	require.True(t, ok)
	assert.Equal(t, "Sony", mk.Raw)
	assert.Equal(t, "Sony", mk.FileSafe)

	is, ok := rec.Lookup("is")
	require.True(t, ok)
	assert.Equal(t, "iso3200", is.FileSafe)

	// Defaults injected for absent codes.
	fi, ok := rec.Lookup(property.CodeFileName)
	require.True(t, ok)
	assert.Equal(t, "DSC01234", fi.FileSafe)

	sz, ok := rec.Lookup(property.CodeFileSize)
	require.True(t, ok)
	assert.Equal(t, "2482348", sz.Raw)

	ex, ok := rec.Lookup(property.CodeExtension)
	require.True(t, ok)
	assert.Equal(t, "jpg", ex.FileSafe)

	ty, _ := rec.Lookup(property.CodeType)
	assert.Equal(t, "JPEG", ty.FileSafe)
	tl, _ := rec.Lookup(property.CodeTypeLongName)
	assert.Equal(t, "Joint Photographic Experts Group", tl.Raw)
}

func TestBuildDefaultsDoNotOverride(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	rec := b.Build("x.jpg", []TagGroup{
		group("Exif SubIFD", Tag{Name: "Date/Time", Value: "2021:10:26 00:00:00"}),
	}, testDefaults)

	dt, ok := rec.Lookup(property.CodeDate)
	require.True(t, ok)
	assert.Equal(t, "2021:10:26 00:00:00", dt.Raw, "tag value must win over filesystem default")
}

func TestBuildDuplicateResolution(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	// Orderable kind: the greater typed value wins regardless of order.
	orders := [][]string{{"1600", "3200"}, {"3200", "1600"}}
	for _, vals := range orders {
		rec := b.Build("x.jpg", []TagGroup{
			group("Exif IFD0", Tag{Name: "ISO Speed Ratings", Value: vals[0]}),
			group("Exif SubIFD", Tag{Name: "ISO Speed Ratings", Value: vals[1]}),
		}, testDefaults)

		is, ok := rec.Lookup("is")
		require.True(t, ok)
		assert.Equal(t, "3200", is.Raw, "insertion order %v", vals)
	}

	// Non-orderable kind: first occurrence wins, later duplicates ignored.
	rec := b.Build("x.jpg", []TagGroup{
		group("Exif IFD0", Tag{Name: "Make", Value: "Sony"}),
		group("Exif SubIFD", Tag{Name: "Make", Value: "Canon"}),
	}, testDefaults)
	mk, _ := rec.Lookup("mk")
	assert.Equal(t, "Sony", mk.Raw)
}

func TestBuildSoftFailures(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	rec := b.Build("x.jpg", []TagGroup{
		group("Exif IFD0",
			Tag{Name: "Image Width", Value: "not a number"}, // malformed → dropped
			Tag{Name: "Weird Vendor Tag", Value: "42"},      // unknown → dropped
			Tag{Name: "Model", Value: "ILCE-7M3"},
		),
	}, testDefaults)

	_, ok := rec.Lookup("iw")
	assert.False(t, ok, "malformed property must be dropped")
	md, ok := rec.Lookup("md")
	require.True(t, ok, "record must survive soft failures")
	assert.Equal(t, "ILCE-7M3", md.Raw)
}

func TestBuildSkipsThumbnailGroups(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	rec := b.Build("x.jpg", []TagGroup{
		group("Exif Thumbnail", Tag{Name: "Image Width", Value: "160"}),
		group("Exif IFD0", Tag{Name: "Image Width", Value: "4000"}),
	}, testDefaults)

	iw, ok := rec.Lookup("iw")
	require.True(t, ok)
	assert.Equal(t, "4000", iw.Raw)
}

func TestBuildEmptyTagsStillValid(t *testing.T) {
	b := NewBuilder(property.NewRegistry())

	rec := b.Build("x.xyz", nil, FileDefaults{
		Timestamp: time.Date(2023, 4, 1, 0, 0, 0, 0, time.Local),
		Extension: "xyz",
		BaseName:  "x",
		Size:      10,
	})

	assert.Equal(t, 6, rec.Len(), "defaults alone form the minimum property set")
	ty, _ := rec.Lookup(property.CodeType)
	assert.Equal(t, "XYZ", ty.Raw)
}

func TestPropertiesOrderedByCode(t *testing.T) {
	b := NewBuilder(property.NewRegistry())
	rec := b.Build("x.jpg", []TagGroup{
		group("Exif IFD0",
			Tag{Name: "Software", Value: "darktable"},
			Tag{Name: "Make", Value: "Sony"},
		),
	}, testDefaults)

	props := rec.Properties()
	for i := 1; i < len(props); i++ {
		assert.Less(t, props[i-1].Code, props[i].Code)
	}
}
