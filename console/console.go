// Package console runs the line-oriented command protocol the firmware
// exposes on its serial port. Each line is one command; each command gets
// exactly one reply line: "ok", "ok <data>" or "error: <reason>".
//
//	STEP <steps>       move a signed number of steps
//	MOVE <mm>          move a signed distance in millimeters
//	ENABLE <0|1>       engage or release holding current
//	USTEPS <n>         set microsteps per revolution
//	SPEED <rpm>        set the target speed
//	STATUS             report backend and motor configuration
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"simplestepper/config"
	"simplestepper/core"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrBadArgument     = errors.New("bad argument")
)

// Console dispatches parsed commands to a motor backend
type Console[B core.Backend] struct {
	motor B
	cfg   *config.MotorConfig
	in    *bufio.Scanner
	out   io.Writer
}

// New creates a console reading commands from r and writing replies to w.
// cfg must be the same configuration the backend was built with.
func New[B core.Backend](motor B, cfg *config.MotorConfig, r io.Reader, w io.Writer) *Console[B] {
	return &Console[B]{
		motor: motor,
		cfg:   cfg,
		in:    bufio.NewScanner(r),
		out:   w,
	}
}

// Run reads and executes commands until EOF, a read error, or ctx is done.
// ctx is checked between lines; a blocked read is not interrupted.
func (c *Console[B]) Run(ctx context.Context) error {
	for c.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		reply, err := c.Execute(c.in.Text())
		if err != nil {
			reply = "error: " + err.Error()
		} else if reply == "" {
			continue
		}

		if _, err := io.WriteString(c.out, reply+"\n"); err != nil {
			return err
		}
	}
	return c.in.Err()
}

// Execute runs a single command line and returns the reply.
// Blank lines and ';' comments return an empty reply and no error.
func (c *Console[B]) Execute(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == ';' {
		return "", nil
	}

	// Runs of blanks separate fields like a single space
	line = strings.Join(strings.Fields(line), " ")
	name := strings.ToUpper(core.SplitString(line, ' ', 0))
	arg := core.SplitString(line, ' ', 1)

	switch name {
	case "STEP":
		if arg == "" {
			return "", fmt.Errorf("STEP: %w", ErrMissingArgument)
		}
		steps, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return "", fmt.Errorf("STEP: %w: %q", ErrBadArgument, arg)
		}
		core.Step(c.motor, int32(steps))

	case "MOVE":
		if arg == "" {
			return "", fmt.Errorf("MOVE: %w", ErrMissingArgument)
		}
		mm, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return "", fmt.Errorf("MOVE: %w: %q", ErrBadArgument, arg)
		}
		steps, err := c.cfg.StepsForDistance(mm)
		if err != nil {
			return "", fmt.Errorf("MOVE: %w: %q: %v", ErrBadArgument, arg, err)
		}
		core.Step(c.motor, steps)

	case "ENABLE":
		on, err := parseInt(arg)
		if err != nil {
			return "", fmt.Errorf("ENABLE: %w", err)
		}
		core.Enable(c.motor, on != 0)

	case "USTEPS":
		n, err := parseInt(arg)
		if err != nil {
			return "", fmt.Errorf("USTEPS: %w", err)
		}
		core.SetMicrostepsPerRevolution(c.motor, n)

	case "SPEED":
		rpm, err := parseInt(arg)
		if err != nil {
			return "", fmt.Errorf("SPEED: %w", err)
		}
		core.SetSpeed(c.motor, rpm)

	case "STATUS":
		return "ok " + c.status(), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	return "ok", nil
}

// DebugWriter returns a core.DebugWriter that interleaves debug lines with
// replies on w. Lines start with "# " so clients can skip them.
func DebugWriter(w io.Writer) core.DebugWriter {
	return func(msg string) {
		// Debug output has no error path; a failed write loses the line
		_, _ = io.WriteString(w, "# "+msg+"\n")
	}
}

func (c *Console[B]) status() string {
	return "backend=" + c.motor.Kind().String() +
		" steps_per_rev=" + strconv.Itoa(c.cfg.StepsPerRevolution) +
		" rev_per_mm=" + strconv.Itoa(c.cfg.RevolutionsPerMillimeter) +
		" microsteps=" + strconv.Itoa(c.cfg.Microsteps) +
		" rpm=" + strconv.Itoa(c.cfg.RPM)
}

func parseInt(arg string) (int, error) {
	if arg == "" {
		return 0, ErrMissingArgument
	}
	n, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadArgument, arg)
	}
	return int(n), nil
}
