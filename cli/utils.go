package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"go.viam.com/trike/chassis"
	"go.viam.com/trike/control"
	"go.viam.com/trike/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func splitPair(s string) (string, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return "", "", errors.Errorf("expected two comma separated values, got %q", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func parseFloatPair(s string) (float32, float32, error) {
	a, b, err := splitPair(s)
	if err != nil {
		return 0, 0, err
	}
	x, err := cast.ToFloat32E(a)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", s)
	}
	y, err := cast.ToFloat32E(b)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", s)
	}
	return x, y, nil
}

func parseIntPair(s string) (int32, int32, error) {
	a, b, err := splitPair(s)
	if err != nil {
		return 0, 0, err
	}
	x, err := cast.ToInt32E(a)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", s)
	}
	y, err := cast.ToInt32E(b)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing %q", s)
	}
	return x, y, nil
}

// parsePhysical reads "speed,rudder" or the word released.
func parsePhysical(s string) (chassis.Physical, error) {
	if strings.EqualFold(strings.TrimSpace(s), released) {
		return chassis.Released, nil
	}
	speed, rudder, err := parseFloatPair(s)
	if err != nil {
		return chassis.Physical{}, err
	}
	return chassis.Physical{Speed: speed, Rudder: rudder}, nil
}

// loadConfig reads the JSON config named by the config flag. Without one the defaults apply.
func loadConfig(c *cli.Context) (*control.Config, error) {
	path := c.String(generalFlagConfig)
	if path == "" {
		return &control.Config{}, nil
	}
	//nolint:gosec
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var attributes map[string]interface{}
	if err := json.Unmarshal(raw, &attributes); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	cfg, err := control.ConfigFromAttributes(attributes)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger only writes to the console when debugging so that logs don't interleave with
// tables.
func newLogger(c *cli.Context) logging.Logger {
	var logger logging.Logger
	switch {
	case c.String(generalFlagLogFile) != "":
		logger = logging.NewFileLogger("trike", c.String(generalFlagLogFile))
	case c.Bool(generalFlagDebug):
		return logging.NewDebugLogger("trike")
	default:
		return logging.NewBlankLogger("trike")
	}
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}
