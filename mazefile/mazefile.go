// Package mazefile decodes maze descriptions: a list of wall segments in
// world units plus an optional start point, as JSON or YAML.
//
//	{
//	  "segments": [{"start": [0, 0], "end": [2, 0]}, ...],
//	  "start_point": [1, 1],
//	  "resolution": 5
//	}
//
// JSON documents are read through the YAML decoder, which accepts them as
// flow-style YAML. Missing required fields are fatal: no partial grid is built.
package mazefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// DefaultResolution is the scale factor applied when a document omits one.
const DefaultResolution = 5

// Sentinel errors for maze description decoding.
var (
	// ErrMissingField indicates a required field is absent.
	ErrMissingField = errors.New("mazefile: missing required field")
	// ErrBadCoordinate indicates a coordinate that is not an [x, y] pair.
	ErrBadCoordinate = errors.New("mazefile: coordinate must be an [x, y] pair")
	// ErrDecode wraps syntax errors from the underlying decoder.
	ErrDecode = errors.New("mazefile: cannot decode document")
)

// Description is a decoded maze document.
type Description struct {
	Segments   []occupancy.Segment
	Start      *occupancy.Point // nil when start_point is absent
	Resolution float64          // DefaultResolution when absent
}

type document struct {
	Segments   []segmentDoc `yaml:"segments"`
	StartPoint []float64    `yaml:"start_point"`
	Resolution *float64     `yaml:"resolution"`
}

type segmentDoc struct {
	Start []float64 `yaml:"start"`
	End   []float64 `yaml:"end"`
}

// Parse decodes a JSON or YAML maze description from r.
func Parse(r io.Reader) (*Description, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: segments", ErrMissingField)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return doc.validate()
}

// Load reads and decodes the maze description at path.
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mazefile: open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Build rasterizes the description into an occupancy grid.
// A positive resolution overrides the document's own.
func (d *Description) Build(resolution float64) (*occupancy.Grid, occupancy.Position, error) {
	if resolution <= 0 {
		resolution = d.Resolution
	}
	return occupancy.Build(d.Segments, resolution, d.Start)
}

func (doc document) validate() (*Description, error) {
	if len(doc.Segments) == 0 {
		return nil, fmt.Errorf("%w: segments", ErrMissingField)
	}

	d := &Description{
		Segments:   make([]occupancy.Segment, len(doc.Segments)),
		Resolution: DefaultResolution,
	}
	for i, s := range doc.Segments {
		if s.Start == nil {
			return nil, fmt.Errorf("%w: segments[%d].start", ErrMissingField, i)
		}
		if s.End == nil {
			return nil, fmt.Errorf("%w: segments[%d].end", ErrMissingField, i)
		}
		start, err := toPoint(s.Start)
		if err != nil {
			return nil, fmt.Errorf("segments[%d].start: %w", i, err)
		}
		end, err := toPoint(s.End)
		if err != nil {
			return nil, fmt.Errorf("segments[%d].end: %w", i, err)
		}
		d.Segments[i] = occupancy.Segment{Start: start, End: end}
	}

	if doc.StartPoint != nil {
		p, err := toPoint(doc.StartPoint)
		if err != nil {
			return nil, fmt.Errorf("start_point: %w", err)
		}
		d.Start = &p
	}
	if doc.Resolution != nil {
		if *doc.Resolution <= 0 {
			return nil, fmt.Errorf("resolution %v: %w", *doc.Resolution, occupancy.ErrBadResolution)
		}
		d.Resolution = *doc.Resolution
	}

	return d, nil
}

func toPoint(xy []float64) (occupancy.Point, error) {
	if len(xy) != 2 {
		return occupancy.Point{}, fmt.Errorf("%w: got %d values", ErrBadCoordinate, len(xy))
	}
	return occupancy.Point{X: xy[0], Y: xy[1]}, nil
}
