// Package control drives a trike chassis toward a target command at a fixed rate while
// integrating wheel feedback into odometry.
package control

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/logging"
	"go.viam.com/trike/odometry"
	"go.viam.com/trike/predict"
	"go.viam.com/trike/utils"
)

// reachedTolerance is how close the issued command has to come to the target to count as reached.
const reachedTolerance = 1e-4

// Command is what the loop sends to the actuators on every tick.
type Command struct {
	Physical chassis.Physical
	// Wheels are the drive wheel angular velocities realizing Physical, in rad/s.
	Wheels chassis.Wheels
}

// Actuator applies commands to the hardware.
type Actuator interface {
	Drive(ctx context.Context, cmd Command) error
}

// WheelSensor reports the measured drive wheel angular velocities in rad/s.
type WheelSensor interface {
	Wheels(ctx context.Context) (chassis.Wheels, error)
}

// Loop periodically steps a status predictor toward its target and forwards the result to an
// Actuator.
type Loop struct {
	mu        sync.Mutex
	period    time.Duration
	model     chassis.Model
	predictor predict.StatusPredictor
	odom      odometry.Odometry
	idle      bool
	reached   bool

	actuator Actuator
	sensor   WheelSensor
	clk      clock.Clock
	logger   logging.Logger

	// running mirrors workers != nil so it can be read without the lock.
	running atomic.Bool
	workers *goutils.StoppableWorkers
}

// NewLoop constructs a control loop. The sensor may be nil, in which case no odometry is
// integrated. A nil clock means the wall clock and a nil logger discards logs.
func NewLoop(cfg *Config, act Actuator, sensor WheelSensor, clk clock.Clock, logger logging.Logger) (*Loop, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate("control"); err != nil {
		return nil, err
	}
	if act == nil {
		return nil, errors.New("control loop needs an actuator")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = logging.NewBlankLogger("control")
	}
	return &Loop{
		period:    cfg.Period(),
		model:     cfg.Chassis.Model(),
		predictor: cfg.StatusPredictor(),
		odom:      odometry.Zero,
		idle:      true,
		actuator:  act,
		sensor:    sensor,
		clk:       clk,
		logger:    logger,
	}, nil
}

// Period returns the duration of one tick.
func (l *Loop) Period() time.Duration {
	return l.period
}

// Model returns the chassis model commands are converted with.
func (l *Loop) Model() chassis.Model {
	return l.model
}

// SetTarget changes the command the loop steers toward. Passing chassis.Released brings the
// chassis to a stop and lets the rear wheel float.
func (l *Loop) SetTarget(target chassis.Physical) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if target != l.predictor.Target {
		l.reached = false
	}
	l.predictor.Target = target
	l.logger.Debugw("new target", "target", target.String())
}

// Target returns the command the loop steers toward.
func (l *Loop) Target() chassis.Physical {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.predictor.Target
}

// Current returns the last issued command.
func (l *Loop) Current() chassis.Physical {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.predictor.Current
}

// Odometry returns the motion measured since the last reset.
func (l *Loop) Odometry() odometry.Odometry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.odom
}

// ResetOdometry zeroes the measured motion.
func (l *Loop) ResetOdometry() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.odom = odometry.Zero
}

// Forecast predicts up to limit ticks from the current state without advancing the loop.
func (l *Loop) Forecast(limit int) []predict.Sample {
	l.mu.Lock()
	tp := predict.NewTrajectoryPredictor(l.period, l.model, l.predictor)
	l.mu.Unlock()
	return predict.Forecast(tp, limit)
}

// Tick runs one iteration: integrate the measured wheel speeds, step the predictor and drive
// the result. Once the chassis has settled a single released command is sent and later
// ticks stay quiet until a new target is set.
func (l *Loop) Tick(ctx context.Context) error {
	var err error
	if l.sensor != nil {
		w, sensorErr := l.sensor.Wheels(ctx)
		if sensorErr != nil {
			err = multierr.Append(err, errors.Wrap(sensorErr, "reading wheel speeds"))
		} else {
			inc := odometry.Integrate(l.model.WheelsToTwist(w), l.period)
			l.mu.Lock()
			l.odom.Accumulate(inc)
			l.mu.Unlock()
		}
	}

	l.mu.Lock()
	p, ok := l.predictor.Next()
	var cmd Command
	send := true
	switch {
	case !ok && l.idle:
		send = false
	case !ok:
		l.idle = true
		cmd = Command{Physical: chassis.Released}
		l.logger.Debug("chassis settled, releasing")
	default:
		l.idle = false
		cmd = Command{Physical: p, Wheels: l.model.PhysicalToWheels(p)}
		target := l.predictor.Target
		if !l.reached && !target.IsReleased() &&
			utils.Float32AlmostEqual(p.Speed, target.Speed, reachedTolerance) &&
			utils.Float32AlmostEqual(p.Rudder, target.Rudder, reachedTolerance) {
			l.reached = true
			l.logger.Infow("target reached", "target", target.String())
		}
	}
	l.mu.Unlock()

	if send {
		if driveErr := l.actuator.Drive(ctx, cmd); driveErr != nil {
			err = multierr.Append(err, errors.Wrapf(driveErr, "driving %v", cmd.Physical))
		}
	}
	return err
}

// Start runs Tick every period in the background until Close is called.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.workers != nil {
		return errors.New("control loop already started")
	}
	l.workers = goutils.NewBackgroundStoppableWorkers(l.run)
	l.running.Store(true)
	return nil
}

// Running reports whether the background loop is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

func (l *Loop) run(ctx context.Context) {
	ticker := l.clk.Ticker(l.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := l.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Warnw("control loop tick failed", "error", err)
		}
	}
}

// Close stops the background loop, if any, and releases the chassis.
func (l *Loop) Close(ctx context.Context) error {
	l.mu.Lock()
	workers := l.workers
	l.workers = nil
	l.running.Store(false)
	l.mu.Unlock()
	// the worker takes the lock on every tick, so it is stopped outside of it
	if workers != nil {
		workers.Stop()
	}

	l.mu.Lock()
	l.predictor.Target = chassis.Released
	l.predictor.Current = chassis.Released
	l.idle = true
	l.mu.Unlock()
	return l.actuator.Drive(ctx, Command{Physical: chassis.Released})
}
