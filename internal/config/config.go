package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// ViewportClass buckets a surface width into mobile, tablet or desktop.
type ViewportClass int

const (
	ClassMobile ViewportClass = iota
	ClassTablet
	ClassDesktop
)

func (c ViewportClass) String() string {
	switch c {
	case ClassMobile:
		return "mobile"
	case ClassTablet:
		return "tablet"
	case ClassDesktop:
		return "desktop"
	}
	return "unknown"
}

// ClassValues holds the per-class population parameters.
type ClassValues struct {
	Count       int     `json:"count"`
	ShellFactor float64 `json:"shellFactor"`
}

// Tuning collects every constant of the cell ring. Nothing in the
// simulation hard-codes these values.
type Tuning struct {
	MobileBreakpoint  int `json:"mobileBreakpoint"`
	DesktopBreakpoint int `json:"desktopBreakpoint"`

	Mobile  ClassValues `json:"mobile"`
	Tablet  ClassValues `json:"tablet"`
	Desktop ClassValues `json:"desktop"`

	// Shell radius jitter: radius = (RadiusMin + U*RadiusSpread) * sphereRadius.
	RadiusMin    float64 `json:"radiusMin"`
	RadiusSpread float64 `json:"radiusSpread"`

	WhiteCellChance      float64 `json:"whiteCellChance"`
	RedSizeMin           float64 `json:"redSizeMin"`
	RedSizeSpread        float64 `json:"redSizeSpread"`
	WhiteSizeMin         float64 `json:"whiteSizeMin"`
	WhiteSizeSpread      float64 `json:"whiteSizeSpread"`
	MobileSizeMultiplier float64 `json:"mobileSizeMultiplier"`
	SpinSpeedRange       float64 `json:"spinSpeedRange"`

	YawStep        float64 `json:"yawStep"`
	PitchStep      float64 `json:"pitchStep"`
	PulseStep      float64 `json:"pulseStep"`
	PulseAmplitude float64 `json:"pulseAmplitude"`
	FocalLength    float64 `json:"focalLength"`

	// Ring center as a fraction of the surface size.
	DesktopCenterX float64 `json:"desktopCenterX"`
	DesktopCenterY float64 `json:"desktopCenterY"`
	CenterX        float64 `json:"centerX"`
	CenterY        float64 `json:"centerY"`

	PointerRadius      float64 `json:"pointerRadius"`
	MaxExpansion       float64 `json:"maxExpansion"`
	ExpansionSmoothing float64 `json:"expansionSmoothing"`
	ExpansionDecay     float64 `json:"expansionDecay"`

	OpacityBase  float64 `json:"opacityBase"`
	OpacitySlope float64 `json:"opacitySlope"` // per 1000 units of depth
	OpacityFloor float64 `json:"opacityFloor"`
	DiskMinX     float64 `json:"diskMinX"`
	DiskMinY     float64 `json:"diskMinY"`

	TileSize        int `json:"tileSize"`
	VariantsPerKind int `json:"variantsPerKind"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MobileBreakpoint:  768,
		DesktopBreakpoint: 1024,

		Mobile:  ClassValues{Count: 250, ShellFactor: 0.32},
		Tablet:  ClassValues{Count: 1000, ShellFactor: 0.38},
		Desktop: ClassValues{Count: 1800, ShellFactor: 0.42},

		RadiusMin:    0.7,
		RadiusSpread: 0.3,

		WhiteCellChance:      0.05,
		RedSizeMin:           11,
		RedSizeSpread:        9,
		WhiteSizeMin:         16,
		WhiteSizeSpread:      8,
		MobileSizeMultiplier: 1.2,
		SpinSpeedRange:       0.012,

		YawStep:        0.0006,
		PitchStep:      0.0002,
		PulseStep:      0.012,
		PulseAmplitude: 0.015,
		FocalLength:    1200,

		DesktopCenterX: 0.72,
		DesktopCenterY: 0.45,
		CenterX:        0.5,
		CenterY:        0.5,

		PointerRadius:      120,
		MaxExpansion:       22,
		ExpansionSmoothing: 0.15,
		ExpansionDecay:     0.9,

		OpacityBase:  0.6,
		OpacitySlope: -0.5,
		OpacityFloor: 0.15,
		DiskMinX:     0.3,
		DiskMinY:     0.2,

		TileSize:        128,
		VariantsPerKind: 10,
	}
}

// Classify returns the viewport class of a surface width.
func (t Tuning) Classify(width int) ViewportClass {
	switch {
	case width < t.MobileBreakpoint:
		return ClassMobile
	case width >= t.DesktopBreakpoint:
		return ClassDesktop
	}
	return ClassTablet
}

// Class returns the population parameters for a viewport class.
func (t Tuning) Class(c ViewportClass) ClassValues {
	switch c {
	case ClassMobile:
		return t.Mobile
	case ClassDesktop:
		return t.Desktop
	}
	return t.Tablet
}

// Animated reports whether a surface of this width runs the frame loop.
func (t Tuning) Animated(width int) bool {
	return width >= t.MobileBreakpoint
}

func (t Tuning) Validate() error {
	if t.MobileBreakpoint <= 0 || t.DesktopBreakpoint < t.MobileBreakpoint {
		return fmt.Errorf("%w: breakpoints %d/%d", ErrInvalidTuning, t.MobileBreakpoint, t.DesktopBreakpoint)
	}
	for name, c := range map[string]ClassValues{"mobile": t.Mobile, "tablet": t.Tablet, "desktop": t.Desktop} {
		if c.Count <= 0 || c.ShellFactor <= 0 {
			return fmt.Errorf("%w: %s class needs a positive count and shell factor", ErrInvalidTuning, name)
		}
	}
	if t.FocalLength <= 0 {
		return fmt.Errorf("%w: focal length %v", ErrInvalidTuning, t.FocalLength)
	}
	if t.PointerRadius <= 0 {
		return fmt.Errorf("%w: pointer radius %v", ErrInvalidTuning, t.PointerRadius)
	}
	if t.ExpansionDecay < 0 || t.ExpansionDecay >= 1 {
		return fmt.Errorf("%w: expansion decay must be in [0,1), got %v", ErrInvalidTuning, t.ExpansionDecay)
	}
	if t.ExpansionSmoothing <= 0 || t.ExpansionSmoothing > 1 {
		return fmt.Errorf("%w: expansion smoothing must be in (0,1], got %v", ErrInvalidTuning, t.ExpansionSmoothing)
	}
	if t.TileSize <= 0 || t.VariantsPerKind <= 0 {
		return fmt.Errorf("%w: atlas %d tiles of %dpx", ErrInvalidTuning, t.VariantsPerKind, t.TileSize)
	}
	return nil
}

// LoadTuning overlays the JSON file at path on the defaults. Fields absent
// from the file keep their default value.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}
