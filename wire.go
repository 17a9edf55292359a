package corlena

// Fixed strides of the flat buffers exchanged with the host. All buffers are
// float32 except the events buffer, which is int32.
const (
	NodeStride            = 8 // id, x, y, w, h, vx, vy, flags
	PointerStride         = 4 // id, screenX, screenY, buttons
	PressurePointerStride = 5 // id, screenX, screenY, pressure, buttons
	ConstraintsStride     = 8 // left, top, right, bottom, gridX, gridY, inertia, damping
	TapParamsStride       = 4 // tapMax, moveThreshold, doubleTapGap, singleTapDelay
	ParticleParamsStride  = 4 // gravityX, gravityY, damping, restitution
	ParticleSpawnStride   = 6 // x, y, vx, vy, radius, life
	TransformStride       = 7 // id, x, y, angle, scaleX, scaleY, reserved
	ParticleOutStride     = 6 // x, y, vx, vy, radius, life
	EventStride           = 4 // type, a, b, reserved
	DrawPathHeaderStride  = 5 // id, packedColor, width, closed, pointCount
	DrawPathPointStride   = 4 // x, y, pressure, timestamp
)

// checkStride classifies a buffer length against a record stride.
func checkStride(n, stride int) Result {
	if n == 0 {
		return ResultEmpty
	}
	if n%stride != 0 {
		return ResultIgnoredMalformed
	}
	return ResultApplied
}

// NodeRecord is one decoded node upsert record.
type NodeRecord struct {
	ID     int32
	X, Y   float64
	W, H   float64
	VX, VY float64
	Flags  uint32
}

func decodeNodes(buf []float32, dst []NodeRecord) []NodeRecord {
	for i := 0; i+NodeStride <= len(buf); i += NodeStride {
		c := buf[i : i+NodeStride]
		dst = append(dst, NodeRecord{
			ID: int32(c[0]),
			X:  float64(c[1]), Y: float64(c[2]),
			W: float64(c[3]), H: float64(c[4]),
			VX: float64(c[5]), VY: float64(c[6]),
			Flags: uint32(c[7]),
		})
	}
	return dst
}

// EncodeNodes appends records to buf in the node upsert layout.
func EncodeNodes(buf []float32, records ...NodeRecord) []float32 {
	for _, r := range records {
		buf = append(buf,
			float32(r.ID), float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			float32(r.VX), float32(r.VY), float32(r.Flags))
	}
	return buf
}

// PointerSample is one decoded pointer sample. Pressure is 0 for stride-4
// buffers.
type PointerSample struct {
	ID       int32
	ScreenX  float64
	ScreenY  float64
	Pressure float64
	Buttons  float64
}

func decodePointers(buf []float32, stride int, dst []PointerSample) []PointerSample {
	for i := 0; i+stride <= len(buf); i += stride {
		c := buf[i : i+stride]
		s := PointerSample{ID: int32(c[0]), ScreenX: float64(c[1]), ScreenY: float64(c[2])}
		if stride == PressurePointerStride {
			s.Pressure = float64(c[3])
			s.Buttons = float64(c[4])
		} else {
			s.Buttons = float64(c[3])
		}
		dst = append(dst, s)
	}
	return dst
}

// EncodePointer appends one stride-4 pointer sample to buf.
func EncodePointer(buf []float32, id int32, sx, sy float64, buttons int) []float32 {
	return append(buf, float32(id), float32(sx), float32(sy), float32(buttons))
}

// EncodePressurePointer appends one stride-5 pointer sample to buf.
func EncodePressurePointer(buf []float32, id int32, sx, sy, pressure float64, buttons int) []float32 {
	return append(buf, float32(id), float32(sx), float32(sy), float32(pressure), float32(buttons))
}

// ParticleRecord is one decoded particle spawn record.
type ParticleRecord struct {
	X, Y, VX, VY, Radius, Life float64
}

func decodeParticles(buf []float32, dst []ParticleRecord) []ParticleRecord {
	for i := 0; i+ParticleSpawnStride <= len(buf); i += ParticleSpawnStride {
		c := buf[i : i+ParticleSpawnStride]
		dst = append(dst, ParticleRecord{
			X: float64(c[0]), Y: float64(c[1]),
			VX: float64(c[2]), VY: float64(c[3]),
			Radius: float64(c[4]), Life: float64(c[5]),
		})
	}
	return dst
}

// EncodeParticles appends records to buf in the particle spawn layout.
func EncodeParticles(buf []float32, records ...ParticleRecord) []float32 {
	for _, r := range records {
		buf = append(buf, float32(r.X), float32(r.Y), float32(r.VX), float32(r.VY),
			float32(r.Radius), float32(r.Life))
	}
	return buf
}

// lastRecord returns the final stride-sized record of buf as float64s.
// Callers have already validated the length.
func lastRecord(buf []float32, stride int) []float64 {
	rec := make([]float64, stride)
	base := len(buf) - stride
	for i := range rec {
		rec[i] = float64(buf[base+i])
	}
	return rec
}

// DecodeEvents splits an events buffer back into Events. Trailing partial
// records are ignored.
func DecodeEvents(buf []int32) []Event {
	out := make([]Event, 0, len(buf)/EventStride)
	for i := 0; i+EventStride <= len(buf); i += EventStride {
		out = append(out, Event{Type: EventType(buf[i]), A: buf[i+1], B: buf[i+2]})
	}
	return out
}
