package corlena

import (
	"math"
	"slices"
)

// DrawPath is a freehand stroke. Points holds flat (x, y, pressure,
// timestamp) quadruples, so its length is always a multiple of
// DrawPathPointStride.
type DrawPath struct {
	ID     int32
	Color  uint32 // packed 0xRRGGBBAA
	Width  float64
	Closed bool
	Points []float64
}

// PointCount returns the number of samples in the path.
func (p *DrawPath) PointCount() int {
	return len(p.Points) / DrawPathPointStride
}

// Point returns sample i as (x, y, pressure, timestamp).
func (p *DrawPath) Point(i int) (x, y, pressure, t float64) {
	q := p.Points[i*DrawPathPointStride : (i+1)*DrawPathPointStride]
	return q[0], q[1], q[2], q[3]
}

// StartPath creates or replaces path id with a single sample stamped at the
// current simulation clock.
func (e *Engine) StartPath(id int32, x, y, pressure float64, color uint32, width float64) {
	if !(width >= 0) {
		width = 0
	}
	p := &DrawPath{ID: id, Color: color, Width: width}
	p.Points = append(p.Points, x, y, pressure, e.clock)
	e.paths[id] = p
}

// AddPoint appends a sample to path id. It returns false if the path does not
// exist.
func (e *Engine) AddPoint(id int32, x, y, pressure float64) bool {
	p, ok := e.paths[id]
	if !ok {
		return false
	}
	p.Points = append(p.Points, x, y, pressure, e.clock)
	return true
}

// FinishPath sets the closed flag of path id. It returns false if the path
// does not exist.
func (e *Engine) FinishPath(id int32, closed bool) bool {
	p, ok := e.paths[id]
	if !ok {
		return false
	}
	p.Closed = closed
	return true
}

// RemovePath deletes path id. It returns false if the path did not exist.
func (e *Engine) RemovePath(id int32) bool {
	if _, ok := e.paths[id]; !ok {
		return false
	}
	delete(e.paths, id)
	return true
}

// ClearPaths deletes all paths.
func (e *Engine) ClearPaths() {
	clear(e.paths)
}

// Path returns path id.
func (e *Engine) Path(id int32) (*DrawPath, bool) {
	p, ok := e.paths[id]
	return p, ok
}

// PathCount returns the number of recorded paths.
func (e *Engine) PathCount() int {
	return len(e.paths)
}

// writePaths serializes every path in ascending id order:
// id, packedColor, width, closed, pointCount, then the points.
func (e *Engine) writePaths(out []float32) []float32 {
	e.pathIDs = e.pathIDs[:0]
	for id := range e.paths {
		e.pathIDs = append(e.pathIDs, id)
	}
	slices.Sort(e.pathIDs)

	for _, id := range e.pathIDs {
		p := e.paths[id]
		var closed float32
		if p.Closed {
			closed = 1
		}
		out = append(out,
			float32(p.ID),
			math.Float32frombits(p.Color),
			float32(p.Width),
			closed,
			float32(p.PointCount()),
		)
		for _, v := range p.Points {
			out = append(out, float32(v))
		}
	}
	return out
}

// PackedColor recovers the 0xRRGGBBAA color stored in a draw path header slot.
func PackedColor(slot float32) uint32 {
	return math.Float32bits(slot)
}
