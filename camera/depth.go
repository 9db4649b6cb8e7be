package camera

import "fmt"

// DepthCalculation selects how view depth is measured when sorting.
type DepthCalculation uint8

const (
	// Distance is the Euclidean distance to the camera. Works for any camera.
	Distance DepthCalculation = iota
	// ZDifference is the offset along the camera's -Z axis, valid for cameras
	// that look down a fixed axis such as 2D cameras.
	ZDifference
)

func (d DepthCalculation) String() string {
	switch d {
	case Distance:
		return "distance"
	case ZDifference:
		return "z_difference"
	default:
		return fmt.Sprintf("DepthCalculation(%d)", uint8(d))
	}
}

// ParseDepthCalculation is the inverse of String.
func ParseDepthCalculation(s string) (DepthCalculation, error) {
	switch s {
	case "", "distance":
		return Distance, nil
	case "z_difference":
		return ZDifference, nil
	}
	return Distance, fmt.Errorf("camera: unknown depth calculation %q", s)
}
