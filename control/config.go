package control

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/predict"
	"go.viam.com/trike/utils"
)

const (
	defaultFrequencyHz        = 25.
	defaultAngularAttenuation = float32(0.5)
	defaultAcceleration       = float32(1.2)
	maxFrequencyHz            = 200.
)

// Config is how you configure a control loop. Omitted fields take their defaults.
type Config struct {
	// FrequencyHz is the tick rate of the loop.
	FrequencyHz float64 `json:"frequency_hz,omitempty"`
	// AngularAttenuation is the fraction of speed kept at full steering lock, in [0, 1].
	AngularAttenuation *float32 `json:"angular_attenuation,omitempty"`
	// AccelerationMPS2 bounds the change of longitudinal speed.
	AccelerationMPS2 float32 `json:"acceleration_mps2,omitempty"`
	// RudderSpeedRadPS bounds the slew rate of the rear wheel.
	RudderSpeedRadPS float32 `json:"rudder_speed_rad_per_sec,omitempty"`

	Chassis chassis.Config `json:"chassis"`
}

// ConfigFromAttributes decodes a JSON style attribute map into a Config.
func ConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &conf})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "decoding control config")
	}
	return &conf, nil
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.FrequencyHz < 0 || cfg.FrequencyHz > maxFrequencyHz {
		err = multierr.Append(err,
			utils.NewConfigRangeError(path, "frequency_hz", float32(cfg.FrequencyHz), 0, maxFrequencyHz))
	}
	if a := cfg.AngularAttenuation; a != nil && (*a < 0 || *a > 1) {
		err = multierr.Append(err, utils.NewConfigRangeError(path, "angular_attenuation", *a, 0, 1))
	}
	if cfg.AccelerationMPS2 < 0 {
		err = multierr.Append(err, utils.NewConfigPositiveError(path, "acceleration_mps2", cfg.AccelerationMPS2))
	}
	if cfg.RudderSpeedRadPS < 0 {
		err = multierr.Append(err, utils.NewConfigPositiveError(path, "rudder_speed_rad_per_sec", cfg.RudderSpeedRadPS))
	}
	return multierr.Append(err, cfg.Chassis.Validate(path+".chassis"))
}

// Period returns the duration of one tick.
func (cfg *Config) Period() time.Duration {
	frequency := cfg.FrequencyHz
	if frequency == 0 {
		frequency = defaultFrequencyHz
	}
	return time.Duration(float64(time.Second) / frequency)
}

// Optimizer builds the speed optimizer described by the config.
func (cfg *Config) Optimizer() predict.Optimizer {
	attenuation := defaultAngularAttenuation
	if cfg.AngularAttenuation != nil {
		attenuation = *cfg.AngularAttenuation
	}
	acceleration := cfg.AccelerationMPS2
	if acceleration == 0 {
		acceleration = defaultAcceleration
	}
	return predict.NewOptimizer(attenuation, acceleration, cfg.Period())
}

// StatusPredictor builds a status predictor, stopped and released, for the config.
func (cfg *Config) StatusPredictor() predict.StatusPredictor {
	rudderSpeed := cfg.RudderSpeedRadPS
	if rudderSpeed == 0 {
		rudderSpeed = predict.DefaultRudderSpeed
	}
	return predict.NewStatusPredictorWithRudderSpeed(cfg.Optimizer(), rudderSpeed, cfg.Period())
}

// TrajectoryPredictor builds a trajectory predictor, stopped and released, for the config.
func (cfg *Config) TrajectoryPredictor() predict.TrajectoryPredictor {
	return predict.NewTrajectoryPredictor(cfg.Period(), cfg.Chassis.Model(), cfg.StatusPredictor())
}
