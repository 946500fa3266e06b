package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/trike/components/encoder"
	"go.viam.com/trike/odometry"
	"go.viam.com/trike/spatialmath"
)

// OdometryAction integrates drive encoder pulse deltas, one LEFT,RIGHT pair per control
// period, and prints the running pose.
func OdometryAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one LEFT,RIGHT pulse pair is required")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	model := cfg.Chassis.Model()
	period := cfg.Period()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Left", "Right", "S", "A", "X", "Y", "Theta"})
	total := odometry.Zero
	for i, arg := range c.Args().Slice() {
		left, right, err := parseIntPair(arg)
		if err != nil {
			return errors.Wrapf(err, "pulse pair %d", i+1)
		}
		w := encoder.WheelsFromPulses(left, right, period)
		total.Accumulate(odometry.Integrate(model.WheelsToTwist(w), period))
		t.AppendRow(table.Row{
			i + 1, left, right,
			fmt.Sprintf("%.4f", total.S),
			fmt.Sprintf("%.4f", total.A),
			fmt.Sprintf("%.4f", total.Pose.X),
			fmt.Sprintf("%.4f", total.Pose.Y),
			fmt.Sprintf("%.4f", total.Pose.Theta),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	printf(c.App.Writer, "%v", total)
	printf(c.App.Writer, "%s", renderPose(total.Pose))
	return nil
}

// renderPose summarizes where the chassis ended up in the ground plane.
func renderPose(pose spatialmath.Pose2D) string {
	end, heading, start := pose.Point(), pose.Heading(), pose.Inverse().Point()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Pose", "X", "Y", "Norm"})
	t.AppendRow(table.Row{"end position", fmt.Sprintf("%.4f", end.X), fmt.Sprintf("%.4f", end.Y), fmt.Sprintf("%.4f", end.Norm())})
	t.AppendRow(table.Row{"heading", fmt.Sprintf("%.4f", heading.X), fmt.Sprintf("%.4f", heading.Y), fmt.Sprintf("%.4f", heading.Norm())})
	t.AppendRow(table.Row{"start seen from end", fmt.Sprintf("%.4f", start.X), fmt.Sprintf("%.4f", start.Y), fmt.Sprintf("%.4f", start.Norm())})
	return t.Render()
}
