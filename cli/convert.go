package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/components/encoder"
	"go.viam.com/trike/utils"
)

// ConvertAction prints one motion in every description the chassis model knows, along with
// the encoder pulses it corresponds to over one control period.
func ConvertAction(c *cli.Context) error {
	set := lo.Filter([]string{convertFlagPhysical, convertFlagTwist, convertFlagWheels}, func(name string, _ int) bool {
		return c.IsSet(name)
	})
	if len(set) != 1 {
		return errors.Errorf("exactly one of --%s, --%s or --%s is required",
			convertFlagPhysical, convertFlagTwist, convertFlagWheels)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	model := cfg.Chassis.Model()

	var twist chassis.Twist
	switch name := set[0]; name {
	case convertFlagPhysical:
		p, err := parsePhysical(c.String(name))
		if err != nil {
			return err
		}
		twist = model.PhysicalToTwist(p)
	case convertFlagTwist:
		v, w, err := parseFloatPair(c.String(name))
		if err != nil {
			return err
		}
		twist = chassis.Twist{V: v, W: w}
	default:
		left, right, err := parseFloatPair(c.String(name))
		if err != nil {
			return err
		}
		twist = model.WheelsToTwist(chassis.Wheels{Left: left, Right: right})
	}

	printf(c.App.Writer, "%s", renderConversion(model, twist, cfg.Period()))
	return nil
}

func renderConversion(model chassis.Model, twist chassis.Twist, period time.Duration) string {
	p := model.TwistToPhysical(twist)
	w := model.TwistToWheels(twist)
	left, right := encoder.PulsesFromWheels(w, period)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Description", "Value"})
	t.AppendRow(table.Row{"physical", p.String()})
	t.AppendRow(table.Row{"twist", fmt.Sprintf("v: %.4f m/s, w: %.4f rad/s (%.2f deg/s)",
		twist.V, twist.W, utils.RadToDeg(float64(twist.W)))})
	t.AppendRow(table.Row{"wheels", fmt.Sprintf("left: %.4f rad/s, right: %.4f rad/s", w.Left, w.Right)})
	t.AppendRow(table.Row{"wheel pulses per tick", fmt.Sprintf("left: %d, right: %d", left, right)})
	if p.IsReleased() {
		t.AppendRow(table.Row{"rudder pulses", released})
	} else {
		t.AppendRow(table.Row{"rudder pulses", encoder.RudderPulses(p.Rudder)})
	}
	return t.Render()
}
