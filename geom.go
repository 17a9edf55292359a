package corlena

import "math"

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ApplyPinch maps a point captured at pinch start to its position under the
// current pinch: P = (newScale/startScale) * (P0 - C0) + C, where C0 and C are
// the start and current pinch centroids. A zero startScale is treated as 1.
func ApplyPinch(start Vec2, startScale float64, startCentroid, centroid Vec2, newScale float64) Vec2 {
	if startScale == 0 {
		startScale = 1
	}
	s := newScale / startScale
	return Vec2{
		X: s*(start.X-startCentroid.X) + centroid.X,
		Y: s*(start.Y-startCentroid.Y) + centroid.Y,
	}
}

// AnchorResampleAtPoint returns the new top-left of a box resized from
// prevW x prevH to outW x outH so the content under anchor stays put. A
// non-positive previous size leaves the position unchanged.
func AnchorResampleAtPoint(pos Vec2, prevW, prevH, outW, outH float64, anchor Vec2) Vec2 {
	if prevW <= 0 || prevH <= 0 {
		return pos
	}
	u := (anchor.X - pos.X) / prevW
	v := (anchor.Y - pos.Y) / prevH
	return Vec2{X: anchor.X - u*outW, Y: anchor.Y - v*outH}
}

// AnchorResampleAtCenter returns the new top-left of a box resized from
// prevW x prevH to outW x outH about its center.
func AnchorResampleAtCenter(pos Vec2, prevW, prevH, outW, outH float64) Vec2 {
	cx := pos.X + prevW/2
	cy := pos.Y + prevH/2
	return Vec2{X: cx - outW/2, Y: cy - outH/2}
}
