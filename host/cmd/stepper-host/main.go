package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"

	"simplestepper/host/client"
	"simplestepper/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", serial.DefaultBaud, "Baud rate of the firmware console")
	execCmd = flag.String("exec", "", "Run a single command and exit")
	verbose = flag.Bool("verbose", false, "Echo every command sent")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	c := client.New(port)

	if *execCmd != "" {
		if err := run(c, *execCmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			port.Close()
			os.Exit(1)
		}
		return
	}

	fmt.Println("Stepper Host - serial console for the stepper firmware")
	fmt.Printf("Connected to %s at %d baud\n\n", cfg.Device, cfg.Baud)
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		case "help", "?":
			printHelp()
			continue
		}

		if err := run(c, line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// run tokenizes one input line and sends it as a single firmware command.
// Quoting is accepted so scripts can pass e.g. `MOVE "-2.5"`.
func run(c *client.Client, line string) error {
	parts, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("failed to parse %q: %w", line, err)
	}
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToUpper(parts[0]) + " " + strings.Join(parts[1:], " ")
	cmd = strings.TrimSpace(cmd)
	if *verbose {
		fmt.Printf("-> %s\n", cmd)
	}

	data, err := c.Command(cmd)
	if err != nil {
		return err
	}
	if data == "" {
		fmt.Println("ok")
	} else {
		fmt.Println(data)
	}
	return nil
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  step <n>      - Move n steps (negative reverses)")
	fmt.Println("  move <mm>     - Move a distance in millimeters")
	fmt.Println("  enable <0|1>  - Release or engage holding current")
	fmt.Println("  usteps <n>    - Set microsteps per revolution")
	fmt.Println("  speed <rpm>   - Set target speed")
	fmt.Println("  status        - Show backend and motor configuration")
	fmt.Println("  help, ?       - Show this help")
	fmt.Println("  quit, exit, q - Exit program")
}
