package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOutputPath(t *testing.T) {
	cases := []struct {
		name     string
		segments []string
		file     string
		ext      string
		want     string
	}{
		{
			name: "flat", segments: nil, file: "2021-10-26_DSC01234", ext: "jpg",
			want: filepath.Join("out", "2021-10-26_DSC01234.jpg"),
		},
		{
			name: "segments", segments: []string{"2021", "Sony"}, file: "img", ext: ".JPG",
			want: filepath.Join("out", "2021", "Sony", "img.jpg"),
		},
		{
			name: "empty segments dropped", segments: []string{"", "2021", "  "}, file: "img", ext: "png",
			want: filepath.Join("out", "2021", "img.png"),
		},
		{
			name: "unsafe characters sanitized", segments: []string{"a/b"}, file: "x:y", ext: "jpg",
			want: filepath.Join("out", "a_b", "x_y.jpg"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildOutputPath("out", tc.segments, tc.file, tc.ext)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitSegments(t *testing.T) {
	assert.Nil(t, SplitSegments(""))
	assert.Equal(t, []string{"2021", "10"}, SplitSegments("2021/10"))
	assert.Equal(t, []string{"2021"}, SplitSegments("/2021/"))
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	p := filepath.Join("out", "img.jpg")
	assert.Equal(t, p, cr.Resolve("a.jpg", p))

	// Same source re-resolving keeps its claim.
	assert.Equal(t, p, cr.Resolve("a.jpg", p))

	// Distinct sources get numbered variants, in order.
	assert.Equal(t, filepath.Join("out", "img-1.jpg"), cr.Resolve("b.jpg", p))
	assert.Equal(t, filepath.Join("out", "img-2.jpg"), cr.Resolve("c.jpg", p))

	// A different base path is independent.
	q := filepath.Join("out", "other.jpg")
	assert.Equal(t, q, cr.Resolve("d.jpg", q))
}

func TestCollisionResolverSkipsClaimedVariant(t *testing.T) {
	cr := NewCollisionResolver()

	base := filepath.Join("out", "img.jpg")
	variant := filepath.Join("out", "img-1.jpg")

	// Someone's template legitimately produced img-1.jpg first.
	assert.Equal(t, variant, cr.Resolve("x.jpg", variant))
	assert.Equal(t, base, cr.Resolve("y.jpg", base))
	// The next collider must skip the taken -1 variant.
	assert.Equal(t, filepath.Join("out", "img-2.jpg"), cr.Resolve("z.jpg", base))
}
