// Package client talks to the stepper firmware console over a serial port
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrRemote wraps every "error:" reply from the firmware
var ErrRemote = errors.New("firmware error")

// DebugPrefix marks firmware debug lines sharing the console port
const DebugPrefix = "#"

// Client sends one command and waits for its reply line
type Client struct {
	w io.Writer
	r *bufio.Reader
}

// New creates a client on an open port
func New(rw io.ReadWriter) *Client {
	return &Client{
		w: rw,
		r: bufio.NewReader(rw),
	}
}

// Command sends a raw command line and returns the data following "ok"
func (c *Client) Command(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("empty command")
	}

	if _, err := io.WriteString(c.w, line+"\n"); err != nil {
		return "", fmt.Errorf("failed to send %q: %w", line, err)
	}

	reply, err := c.readReply()
	if err != nil {
		return "", fmt.Errorf("failed to read reply to %q: %w", line, err)
	}

	switch {
	case reply == "ok":
		return "", nil
	case strings.HasPrefix(reply, "ok "):
		return strings.TrimPrefix(reply, "ok "), nil
	case strings.HasPrefix(reply, "error:"):
		return "", fmt.Errorf("%w: %s", ErrRemote, strings.TrimSpace(strings.TrimPrefix(reply, "error:")))
	default:
		return "", fmt.Errorf("unexpected reply to %q: %q", line, reply)
	}
}

// readReply returns the next reply line, skipping firmware debug output
func (c *Client) readReply() (string, error) {
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, DebugPrefix) {
			continue
		}
		return line, nil
	}
}

// Step moves the motor a signed number of steps
func (c *Client) Step(steps int) error {
	_, err := c.Command("STEP " + strconv.Itoa(steps))
	return err
}

// Move moves the motor a signed distance in millimeters
func (c *Client) Move(mm float64) error {
	_, err := c.Command("MOVE " + strconv.FormatFloat(mm, 'f', -1, 64))
	return err
}

// Enable engages or releases holding current
func (c *Client) Enable(enabled bool) error {
	arg := "0"
	if enabled {
		arg = "1"
	}
	_, err := c.Command("ENABLE " + arg)
	return err
}

// SetMicrosteps sets microsteps per revolution
func (c *Client) SetMicrosteps(microsteps int) error {
	_, err := c.Command("USTEPS " + strconv.Itoa(microsteps))
	return err
}

// SetSpeed sets the target speed in RPM
func (c *Client) SetSpeed(rpm int) error {
	_, err := c.Command("SPEED " + strconv.Itoa(rpm))
	return err
}

// Status returns the firmware's key=value status fields
func (c *Client) Status() (map[string]string, error) {
	data, err := c.Command("STATUS")
	if err != nil {
		return nil, err
	}

	status := make(map[string]string)
	for _, field := range strings.Fields(data) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		status[key] = value
	}
	return status, nil
}
