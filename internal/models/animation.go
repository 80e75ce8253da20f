package models

// Easing values accepted for slide transitions.
const (
	EaseOut   = "ease-out"
	EaseIn    = "ease-in"
	EaseInOut = "ease-in-out"
	Linear    = "linear"
)

// Slide directions.
const (
	DirectionLeft   = "left"
	DirectionRight  = "right"
	DirectionTop    = "top"
	DirectionBottom = "bottom"
)

// AnimationSettings controls the timed slide-in/slide-out transitions of a
// graphic. Durations are milliseconds and must be positive.
type AnimationSettings struct {
	SlideInDuration   int    `json:"slideInDuration"`
	SlideOutDuration  int    `json:"slideOutDuration"`
	SlideInType       string `json:"slideInType"`
	SlideOutType      string `json:"slideOutType"`
	SlideInDirection  string `json:"slideInDirection"`
	SlideOutDirection string `json:"slideOutDirection,omitempty"`
}

// DefaultAnimationSettings is the documented fallback used whenever a
// template carries no explicit settings.
func DefaultAnimationSettings() AnimationSettings {
	return AnimationSettings{
		SlideInDuration:   500,
		SlideOutDuration:  500,
		SlideInType:       EaseOut,
		SlideOutType:      EaseIn,
		SlideInDirection:  DirectionLeft,
		SlideOutDirection: DirectionLeft,
	}
}

// ValidEasing reports whether t is a supported easing value.
func ValidEasing(t string) bool {
	switch t {
	case EaseOut, EaseIn, EaseInOut, Linear:
		return true
	}
	return false
}

// ValidDirection reports whether d is a supported slide direction.
func ValidDirection(d string) bool {
	switch d {
	case DirectionLeft, DirectionRight, DirectionTop, DirectionBottom:
		return true
	}
	return false
}
