// Package cli contains the trike command line: forecasting, unit conversion and encoder
// odometry for a configured chassis.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	forecastFlagTarget  = "target"
	forecastFlagCurrent = "current"
	forecastFlagLimit   = "limit"

	convertFlagPhysical = "physical"
	convertFlagTwist    = "twist"
	convertFlagWheels   = "wheels"

	released = "released"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "trike",
		Usage:           "plan and inspect the motion of a three-wheel chassis",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load control and chassis configuration from JSON `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "write logs to a rotating `FILE` instead of the console",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "forecast",
				Usage: "predict the commands and trajectory produced while steering toward a target",
				UsageText: "trike [global options] forecast --target SPEED,RUDDER|released " +
					"[--current SPEED,RUDDER|released] [--limit N]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     forecastFlagTarget,
						Required: true,
						Usage:    "target command as speed (m/s) and rudder (rad), or 'released'",
					},
					&cli.StringFlag{
						Name:  forecastFlagCurrent,
						Value: "0,0",
						Usage: "command currently executed, as speed (m/s) and rudder (rad), or 'released'",
					},
					&cli.IntFlag{
						Name:  forecastFlagLimit,
						Value: 200,
						Usage: "maximum number of ticks to forecast, 0 for no limit (released target only)",
					},
				},
				Action: ForecastAction,
			},
			{
				Name:  "convert",
				Usage: "convert a motion between physical, twist and wheel descriptions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  convertFlagPhysical,
						Usage: "speed (m/s) and rudder (rad), or 'released'",
					},
					&cli.StringFlag{
						Name:  convertFlagTwist,
						Usage: "linear (m/s) and angular (rad/s) speed",
					},
					&cli.StringFlag{
						Name:  convertFlagWheels,
						Usage: "left and right drive wheel angular speed (rad/s)",
					},
				},
				Action: ConvertAction,
			},
			{
				Name:      "odometry",
				Usage:     "integrate drive encoder pulse deltas, one pair per control period",
				ArgsUsage: "LEFT,RIGHT [LEFT,RIGHT...]",
				Action:    OdometryAction,
			},
		},
	}
}
