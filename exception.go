package arm

import (
	"fmt"
	"log"
)

// FaultKind classifies why a step could not complete.
type FaultKind int

const (
	// Unimplemented: dispatch-table slot reserved for an opcode the
	// firmware does not exercise.
	Unimplemented FaultKind = iota
	// Malformed: encoding fields violate a should-be-zero/one rule.
	Malformed
	// Unpredictable: an encoding the architecture gives no guarantee for.
	Unpredictable
)

func (k FaultKind) String() string {
	switch k {
	case Unimplemented:
		return "unimplemented"
	case Malformed:
		return "malformed"
	case Unpredictable:
		return "unpredictable"
	default:
		return "unknown"
	}
}

// Fault reports a fatal condition raised during Step. All three kinds
// are unrecoverable: the CPU latches halted and Step returns the same
// Fault on every subsequent call until Reset.
type Fault struct {
	Kind   FaultKind
	Word   uint32
	Index  int
	PC     uint32
	Detail string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("arm: %s fault at pc=%08x word=%08x index=%03x: %s",
		f.Kind, f.PC, f.Word, f.Index, f.Detail)
}

// fault latches the CPU into the halted state and records diagnostic
// context: the raw instruction word, its decode index, and the faulting
// PC, as required for all three non-bus-boundary error kinds.
func (c *CPU) fault(kind FaultKind, detail string) {
	f := &Fault{
		Kind:   kind,
		Word:   c.ir,
		Index:  decodeIndex(c.ir),
		PC:     c.pc,
		Detail: detail,
	}
	c.lastFault = f
	c.halted = true
	log.Printf("[arm] %s", f.Error())
}

// RequestIRQ and RequestFIQ latch a pending interrupt line. Delivery is
// sampled once per Step, at the start of the step, consistent with the
// single-threaded synchronous execution model: a peripheral (typically
// the interrupt controller in package bus) calls these between steps.
func (c *CPU) RequestIRQ(pending bool)  { c.irqLine = pending }
func (c *CPU) RequestFIQ(pending bool)  { c.fiqLine = pending }

// checkInterrupts samples the latched IRQ/FIQ lines against the CPSR
// mask bits and, if one is unmasked and pending, takes the corresponding
// exception instead of dispatching the next instruction.
func (c *CPU) checkInterrupts() bool {
	if c.fiqLine && c.cpsr&cpsrF == 0 {
		c.enterException(ModeFIQ, 0x1C, true)
		return true
	}
	if c.irqLine && c.cpsr&cpsrI == 0 {
		c.enterException(ModeIRQ, 0x18, false)
		return true
	}
	return false
}

// enterException performs the common mode-entry sequence used by
// interrupts and SWI: bank the current mode's SP/LR, save SPSR, set the
// new mode with interrupts appropriately masked, point LR at the return
// address, and set PC to the vector.
func (c *CPU) enterException(newMode uint32, vector uint32, disableFIQ bool) {
	returnPC := c.pc + 4
	oldCPSR := c.cpsr

	c.switchMode(newMode)
	c.spsr[bankIndex(newMode)] = oldCPSR
	c.setReg(14, returnPC)

	c.cpsr &^= cpsrModeMask
	c.cpsr |= newMode
	c.cpsr |= cpsrI
	if disableFIQ {
		c.cpsr |= cpsrF
	}
	c.cpsr &^= cpsrT

	c.pc = vector
	c.pcWritten = true
}
