package avatar

// Zoom and rotation limits for the transform editor.
const (
	MinZoomPercent = 100
	MaxZoomPercent = 200

	// RotationStepDegrees is the fixed quarter-turn applied per rotate action.
	RotationStepDegrees = 90
)

// TransformState holds the editor's zoom and rotation parameters. ZoomPercent
// is clamped into [MinZoomPercent, MaxZoomPercent] on every update.
// RotationDegrees accumulates by ±90 per rotate action; it is reduced modulo
// 360 with truncated (sign-preserving) semantics, so its value stays in
// (-360, 360) and only the mod-360 residue is meaningful for rendering.
type TransformState struct {
	ZoomPercent     int
	RotationDegrees int
}

// DefaultTransform is the state every new editing session starts from.
func DefaultTransform() TransformState {
	return TransformState{ZoomPercent: MinZoomPercent, RotationDegrees: 0}
}

// SetZoom clamps the value into the valid range rather than erroring;
// out-of-range slider input is smoothed, not rejected.
func (s *TransformState) SetZoom(value int) {
	s.ZoomPercent = clampZoom(value)
}

// RotateLeft turns the image a quarter turn counterclockwise.
func (s *TransformState) RotateLeft() {
	s.RotationDegrees = (s.RotationDegrees - RotationStepDegrees) % 360
}

// RotateRight turns the image a quarter turn clockwise.
func (s *TransformState) RotateRight() {
	s.RotationDegrees = (s.RotationDegrees + RotationStepDegrees) % 360
}

// Reset restores the default zoom and rotation.
func (s *TransformState) Reset() {
	*s = DefaultTransform()
}

func clampZoom(value int) int {
	if value < MinZoomPercent {
		return MinZoomPercent
	}
	if value > MaxZoomPercent {
		return MaxZoomPercent
	}
	return value
}
