//go:build rp2040 && !hbridge

package main

// Step/dir pulse generation on a PIO state machine.
// Command word, shifted out LSB first:
//
//	Bits 0-15:  pulse count - 1
//	Bits 16-30: delay cycles between pulses
//	Bit 31:     direction (1 = forward, dir pin high)

import (
	"errors"
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

const (
	stepperPIOOrigin = 0 // Load at offset 0 for correct jump addresses

	// PIO clock is divided down to 1 MHz so one cycle is one microsecond
	pioCycle = time.Microsecond

	// Cycles spent per pulse outside the delay loop
	pioLoopOverhead = 12

	maxPIODelay = 1<<15 - 1
	maxPIOCount = 1 << 16

	stepperSM = 0
)

var errPIOBusy = errors.New("PIO0 state machine already claimed")

// buildStepperProgram creates the stepper PIO program using AssemblerV0
func buildStepperProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(),   // 1: out x, 16 (pulse count - 1)
		asm.Out(rp2pio.OutDestISR, 15).Encode(), // 2: out isr, 15 (delay cycles)
		asm.Out(rp2pio.OutDestPins, 1).Encode(), // 3: out pins, 1 (direction)
		// step_loop:
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(),    // 4: set pins, 1 [7]
		asm.Set(rp2pio.SetDestPins, 0).Encode(),             // 5: set pins, 0
		asm.Mov(rp2pio.MovDestY, rp2pio.MovSrcISR).Encode(), // 6: mov y, isr
		// delay_loop:
		asm.Jmp(7, rp2pio.JmpYNZeroDec).Encode(), // 7: jmp y--, 7
		asm.Jmp(4, rp2pio.JmpXNZeroDec).Encode(), // 8: jmp x--, 4
		// .wrap
	}
}

// pioPulser implements stepdir.Pulser on one PIO state machine
type pioPulser struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	stepPin machine.Pin
	dirPin  machine.Pin
	offset  uint8
}

// newPIOPulser claims a state machine on PIO0 and hands it the step and dir pins
func newPIOPulser(stepPin, dirPin machine.Pin) (*pioPulser, error) {
	p := &pioPulser{
		pio:     rp2pio.PIO0,
		stepPin: stepPin,
		dirPin:  dirPin,
	}
	p.sm = p.pio.StateMachine(stepperSM)

	// Claim the state machine before touching its registers
	if !p.sm.TryClaim() {
		return nil, errPIOBusy
	}

	program := buildStepperProgram()
	offset, err := p.pio.AddProgram(program, stepperPIOOrigin)
	if err != nil {
		return nil, err
	}
	p.offset = offset

	// Configure pins for PIO
	p.stepPin.Configure(machine.PinConfig{Mode: p.pio.PinMode()})
	p.dirPin.Configure(machine.PinConfig{Mode: p.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(p.stepPin, 1)
	cfg.SetOutPins(p.dirPin, 1)

	// Shift right, autopull disabled (explicit PULL), 32-bit threshold
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(uint16(machine.CPUFrequency()/1000000), 0)

	// Initialize state machine before setting pin directions
	p.sm.Init(offset, cfg)
	p.sm.SetPindirsConsecutive(p.stepPin, 1, true)
	p.sm.SetPindirsConsecutive(p.dirPin, 1, true)
	p.sm.SetPinsConsecutive(p.stepPin, 1, false)
	p.sm.SetPinsConsecutive(p.dirPin, 1, false)
	p.sm.SetEnabled(true)

	return p, nil
}

// Pulse queues count pulses in chunks the program can count and waits
// for the train to finish
func (p *pioPulser) Pulse(count uint32, forward bool, period time.Duration) {
	delay := pioDelayCycles(period)
	actual := time.Duration(delay+pioLoopOverhead) * pioCycle

	for count > 0 {
		n := count
		if n > maxPIOCount {
			n = maxPIOCount
		}
		p.put(stepCommand(n, delay, forward))
		time.Sleep(time.Duration(n) * actual)
		count -= n
	}
}

func (p *pioPulser) put(cmd uint32) {
	for p.sm.IsTxFIFOFull() {
		// Busy wait - should be very brief
	}
	p.sm.TxPut(cmd)
}

// pioDelayCycles converts a step period into delay loop iterations,
// clamped to what the command word can hold
func pioDelayCycles(period time.Duration) uint32 {
	cycles := int64(period/pioCycle) - pioLoopOverhead
	if cycles < 0 {
		return 0
	}
	if cycles > maxPIODelay {
		return maxPIODelay
	}
	return uint32(cycles)
}

// stepCommand packs one pulse train; count must be 1..maxPIOCount
func stepCommand(count, delay uint32, forward bool) uint32 {
	cmd := (count - 1) | (delay << 16)
	if forward {
		cmd |= 1 << 31
	}
	return cmd
}
