package chassis

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/trike/utils"
)

// Config is how you configure the chassis geometry. Zero fields fall back to the reference
// platform.
type Config struct {
	WidthM       float32 `json:"width_m,omitempty"`
	LengthM      float32 `json:"length_m,omitempty"`
	WheelRadiusM float32 `json:"wheel_radius_m,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.WidthM < 0 {
		err = multierr.Append(err, utils.NewConfigPositiveError(path, "width_m", cfg.WidthM))
	}
	if cfg.LengthM < 0 {
		err = multierr.Append(err, utils.NewConfigPositiveError(path, "length_m", cfg.LengthM))
	}
	if cfg.WheelRadiusM < 0 {
		err = multierr.Append(err, utils.NewConfigPositiveError(path, "wheel_radius_m", cfg.WheelRadiusM))
	}
	if err != nil {
		return err
	}

	m := cfg.Model()
	if m.Length*m.Length/m.Width <= m.Width/2 {
		// the critical rudder angle must fall within (0, π/2)
		return goutils.NewConfigValidationError(path,
			errors.Errorf("length_m (%v) must exceed width_m/√2 (%v)", m.Length, m.Width/math.Sqrt2))
	}
	return nil
}

// Model builds the chassis model described by the config.
func (cfg *Config) Model() Model {
	width, length, wheel := cfg.WidthM, cfg.LengthM, cfg.WheelRadiusM
	if width == 0 {
		width = DefaultWidth
	}
	if length == 0 {
		length = DefaultLength
	}
	if wheel == 0 {
		wheel = DefaultWheelRadius
	}
	return NewModel(width, length, wheel)
}
