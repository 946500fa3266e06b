package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/predict"
)

// ForecastAction prints the forecast ribbon from the current command toward the target.
func ForecastAction(c *cli.Context) error {
	logger := newLogger(c)
	//nolint:errcheck
	defer logger.Sync()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	target, err := parsePhysical(c.String(forecastFlagTarget))
	if err != nil {
		return errors.Wrap(err, "bad target")
	}
	current, err := parsePhysical(c.String(forecastFlagCurrent))
	if err != nil {
		return errors.Wrap(err, "bad current command")
	}
	limit := c.Int(forecastFlagLimit)
	if limit <= 0 && !target.IsReleased() {
		return errors.New("a forecast toward a held target never ends, set a positive limit")
	}

	tp := cfg.TrajectoryPredictor()
	tp.Predictor.Current = current
	tp.Predictor.Target = target
	logger.Debugw("forecasting",
		"period", tp.Period,
		"current", current.String(),
		"target", target.String(),
		"limit", limit)

	samples := predict.Forecast(tp, limit)
	logger.Infow("forecast done", "ticks", len(samples))

	printf(c.App.Writer, "%s", renderForecast(samples))
	if len(samples) > 0 {
		last := samples[len(samples)-1].Odometry
		printf(c.App.Writer, "%v", last)
		printf(c.App.Writer, "%s", renderPose(last.Pose))
	}
	return nil
}

func renderForecast(samples []predict.Sample) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Elapsed", "Speed", "Rudder", "S", "A", "X", "Y", "Theta"})
	t.AppendRows(lo.Map(samples, func(s predict.Sample, i int) table.Row {
		return table.Row{
			i + 1,
			s.Elapsed.String(),
			fmt.Sprintf("%.3f", s.Command.Speed),
			formatRudder(s.Command),
			fmt.Sprintf("%.4f", s.Odometry.S),
			fmt.Sprintf("%.4f", s.Odometry.A),
			fmt.Sprintf("%.4f", s.Odometry.Pose.X),
			fmt.Sprintf("%.4f", s.Odometry.Pose.Y),
			fmt.Sprintf("%.4f", s.Odometry.Pose.Theta),
		}
	}))
	return t.Render()
}

func formatRudder(p chassis.Physical) string {
	if p.IsReleased() {
		return released
	}
	return fmt.Sprintf("%.3f", p.Rudder)
}
