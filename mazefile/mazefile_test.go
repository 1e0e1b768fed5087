package mazefile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radarmaze/mazefile"
	"github.com/katalvlaran/radarmaze/occupancy"
)

const lShapeJSON = `{
  "segments": [
    {"start": [0, 0], "end": [2, 0]},
    {"start": [0, 0], "end": [0, 2]}
  ]
}`

func TestParse_JSON(t *testing.T) {
	d, err := mazefile.Parse(strings.NewReader(lShapeJSON))
	require.NoError(t, err)

	require.Len(t, d.Segments, 2)
	assert.Equal(t, occupancy.Point{X: 2, Y: 0}, d.Segments[0].End)
	assert.Nil(t, d.Start)
	assert.Equal(t, float64(mazefile.DefaultResolution), d.Resolution)

	g, start, err := d.Build(0)
	require.NoError(t, err)
	assert.Equal(t, 11, g.Height())
	assert.Equal(t, 11, g.Width())
	assert.Equal(t, occupancy.Position{}, start)
}

func TestParse_YAML(t *testing.T) {
	doc := `
segments:
  - start: [0, 0]
    end: [4, 0]
  - {start: [0, 0], end: [0, 3.5]}
start_point: [1.5, 2]
resolution: 2
`
	d, err := mazefile.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.NotNil(t, d.Start)
	assert.Equal(t, occupancy.Point{X: 1.5, Y: 2}, *d.Start)
	assert.Equal(t, 2.0, d.Resolution)
	assert.Equal(t, occupancy.Point{X: 0, Y: 3.5}, d.Segments[1].End)

	g, start, err := d.Build(0)
	require.NoError(t, err)
	assert.Equal(t, 8, g.Height())
	assert.Equal(t, 9, g.Width())
	assert.Equal(t, occupancy.Position{Row: 4, Col: 3}, start)

	// An explicit resolution overrides the document.
	g, _, err = d.Build(1)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Width())
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		err  error
	}{
		{"Empty", "", mazefile.ErrMissingField},
		{"NoSegments", `{"start_point": [0, 0]}`, mazefile.ErrMissingField},
		{"EmptySegments", `{"segments": []}`, mazefile.ErrMissingField},
		{"MissingEnd", `{"segments": [{"start": [0, 0]}]}`, mazefile.ErrMissingField},
		{"MissingStart", `{"segments": [{"end": [0, 0]}]}`, mazefile.ErrMissingField},
		{"ShortCoordinate", `{"segments": [{"start": [0], "end": [1, 1]}]}`, mazefile.ErrBadCoordinate},
		{"BadStartPoint", `{"segments": [{"start": [0, 0], "end": [1, 1]}], "start_point": [1, 2, 3]}`, mazefile.ErrBadCoordinate},
		{"BadResolution", `{"segments": [{"start": [0, 0], "end": [1, 1]}], "resolution": 0}`, occupancy.ErrBadResolution},
		{"Syntax", `{"segments": [`, mazefile.ErrDecode},
		{"WrongType", `{"segments": [{"start": "a", "end": [1, 1]}]}`, mazefile.ErrDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := mazefile.Parse(strings.NewReader(tc.doc))
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maze.json")
	require.NoError(t, os.WriteFile(path, []byte(lShapeJSON), 0o644))

	d, err := mazefile.Load(path)
	require.NoError(t, err)
	assert.Len(t, d.Segments, 2)

	_, err = mazefile.Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// A document may parse cleanly yet describe a grid that Build refuses.
func TestBuild_Oversized(t *testing.T) {
	d, err := mazefile.Parse(strings.NewReader(`{"segments": [{"start": [0, 0], "end": [1e300, 0]}]}`))
	require.NoError(t, err)

	_, _, err = d.Build(0)
	assert.ErrorIs(t, err, occupancy.ErrGridTooLarge)

	d, err = mazefile.Parse(strings.NewReader(`{"segments": [{"start": [0, 0], "end": [1, 0]}], "start_point": [0, 1e300]}`))
	require.NoError(t, err)
	_, _, err = d.Build(1)
	assert.ErrorIs(t, err, occupancy.ErrGridTooLarge)
}
