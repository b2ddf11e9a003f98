// Package arm implements an ARMv4 CPU interpreter for a small 1990s-class
// handheld device.
//
// The ARMv4 core here is:
//   - Sixteen 32-bit general-purpose registers (R0-R15), with R15 the
//     program counter and R13/R14 banked per privilege mode
//   - A CPSR holding the N/Z/C/V flags, the Thumb bit, and a 5-bit mode
//     field, plus one banked SPSR per privileged mode
//   - A dense 4096-entry dispatch table over instruction bits [27:20]/[7:4]
//
// Thumb-state execution, coprocessor instructions, and cycle-accurate
// pipeline timing are not implemented; see the package-level design notes.
package arm

// Registers holds the programmer-visible state of the ARMv4 core.
type Registers struct {
	R    [15]uint32 // R0-R14 (current-mode view; R15/PC kept separately)
	PC   uint32     // address of the next instruction to fetch
	CPSR uint32
}

// CPU is the ARMv4 processor.
type CPU struct {
	r    [15]uint32 // R0-R14, current-mode view (R13/R14 reflect active bank)
	pc   uint32     // address of the instruction about to be fetched
	cpsr uint32

	bankedR13 [6]uint32 // indexed by bankIndex(mode); bank 0 holds user/system R13 while a privileged mode is active (see switchMode)
	bankedR14 [6]uint32
	spsr      [6]uint32 // bank 0 (user/system) is never read: hasSPSR guards it

	bus      Bus
	debugger Debugger // non-nil when bus (or an explicit SetDebugger) implements Debugger

	ir        uint32 // latched instruction word of the step in progress
	pcWritten bool   // set by any kernel that wrote PC directly

	halted    bool
	lastFault *Fault

	irqLine bool
	fiqLine bool
}

// New creates a CPU wired to the given bus, reset into supervisor mode
// with the program counter at resetPC.
func New(bus Bus, resetPC uint32) *CPU {
	c := &CPU{bus: bus}
	c.debugger, _ = bus.(Debugger)
	c.Reset(resetPC)
	return c
}

// SetDebugger attaches an optional debugger collaborator independent of
// whatever the bus itself implements.
func (c *CPU) SetDebugger(d Debugger) {
	c.debugger = d
}

// Reset enters supervisor mode with interrupts masked, Thumb state clear,
// and the program counter at resetPC. General-purpose registers and the
// banked shadow copies are cleared.
func (c *CPU) Reset(resetPC uint32) {
	c.r = [15]uint32{}
	c.bankedR13 = [6]uint32{}
	c.bankedR14 = [6]uint32{}
	c.spsr = [6]uint32{}
	c.pc = resetPC
	c.cpsr = ModeSVC | cpsrI | cpsrF
	c.ir = 0
	c.pcWritten = false
	c.halted = false
	c.lastFault = nil
	c.irqLine = false
	c.fiqLine = false
}

// Halted reports whether the CPU has latched a fatal Fault.
func (c *CPU) Halted() bool {
	return c.halted
}

// LastFault returns the fault that halted the CPU, or nil.
func (c *CPU) LastFault() *Fault {
	return c.lastFault
}

// Registers returns a snapshot of the current programmer-visible state.
// Reading index-based register state this way does NOT apply the PC+8
// read contract kernels observe via reg(15); Registers().PC is the raw
// fetch pointer (the address of the next instruction to execute).
func (c *CPU) Registers() Registers {
	return Registers{R: c.r, PC: c.pc, CPSR: c.cpsr}
}

// SetState installs programmer-visible state directly, for use by tests
// that must establish exact CPU state before executing an instruction.
func (c *CPU) SetState(regs Registers) {
	c.r = regs.R
	c.pc = regs.PC
	c.cpsr = regs.CPSR
	c.ir = 0
	c.pcWritten = false
	c.halted = false
	c.lastFault = nil
}

// Step executes a single instruction. It returns the Fault that halted
// the CPU (nil on success). Once halted, Step is a no-op that keeps
// returning the same Fault until Reset.
func (c *CPU) Step() error {
	if c.halted {
		return c.lastFault
	}

	if c.checkInterrupts() {
		return nil
	}

	word := c.load(Word, c.pc)
	cond := uint8(word >> 28)

	if cond == 0xF {
		c.ir = word
		c.fault(Unpredictable, "condition code 0b1111")
		return c.lastFault
	}
	if !c.testCondition(cond) {
		c.pc += 4
		return nil
	}

	instrPC := c.pc
	c.ir = word
	c.pcWritten = false

	idx := decodeIndex(word)
	handler := opcodeTable[idx]
	if handler == nil {
		c.fault(Unimplemented, "no handler registered for decode slot")
		return c.lastFault
	}

	handler(c)

	if c.halted {
		return c.lastFault
	}
	if !c.pcWritten {
		c.pc = instrPC + 4
	}
	return nil
}

// decodeIndex computes the 4096-slot dispatch index from an instruction
// word: bits [27:20] concatenated with bits [7:4].
func decodeIndex(word uint32) int {
	return int((((word >> 20) & 0xFF) << 4) | ((word >> 4) & 0xF))
}

// reg reads register i honouring the PC+8 pipeline-offset contract for i==15.
func (c *CPU) reg(i uint8) uint32 {
	if i == 15 {
		return c.pc + 8
	}
	return c.r[i]
}

// setReg writes register i. Writing R15 updates the fetch pointer and
// marks the step as having written PC (see pcWritten).
func (c *CPU) setReg(i uint8, v uint32) {
	if i == 15 {
		c.pc = v
		c.pcWritten = true
		return
	}
	c.r[i] = v
}

// setRegPCMask writes register i; if i==15, the low two bits of v are
// cleared first (LDR's "PC-mask", no Thumb mode switch).
func (c *CPU) setRegPCMask(i uint8, v uint32) {
	if i == 15 {
		c.setPC(v &^ 3)
		return
	}
	c.r[i] = v
}

func (c *CPU) cpsrVal() uint32 { return c.cpsr }

func (c *CPU) spsrVal() uint32 {
	mode := c.cpsr & cpsrModeMask
	if !hasSPSR(mode) {
		return 0
	}
	return c.spsr[bankIndex(mode)]
}

// setPC sets the fetch pointer directly (B/BL and PC-masked loads; no
// Thumb or mode switch) and marks the step as having written PC.
func (c *CPU) setPC(v uint32) {
	c.pc = v
	c.pcWritten = true
}

// setPCCPSR sets PC and CPSR together, atomically from the caller's point
// of view (used by LDM(3)): the mode switch implied
// by the new CPSR must only take effect once PC is also updated, so that
// banked registers of the outgoing mode are not touched afterwards.
func (c *CPU) setPCCPSR(pc, cpsr uint32) {
	newMode := cpsr & cpsrModeMask
	c.switchMode(newMode)
	c.cpsr = cpsr
	c.pc = pc
	c.pcWritten = true
}

// setPCThumb sets PC and the Thumb bit together (BX's contract).
func (c *CPU) setPCThumb(pc uint32, thumb bool) {
	if thumb {
		c.cpsr |= cpsrT
	} else {
		c.cpsr &^= cpsrT
	}
	c.pc = pc
	c.pcWritten = true
}

// switchMode banks out R13/R14 of the current mode and banks in R13/R14
// of newMode. It does not itself write CPSR; callers update the mode
// field separately (or via setPCCPSR).
func (c *CPU) switchMode(newMode uint32) {
	oldMode := c.cpsr & cpsrModeMask
	oldIdx := bankIndex(oldMode)
	newIdx := bankIndex(newMode)
	if oldIdx == newIdx {
		return
	}
	c.bankedR13[oldIdx] = c.r[13]
	c.bankedR14[oldIdx] = c.r[14]
	c.r[13] = c.bankedR13[newIdx]
	c.r[14] = c.bankedR14[newIdx]
}

// msrCPSR applies a byte-granular field mask to CPSR, banking registers
// if the mode field (within the control byte) changes. Per §9's open
// question, each field byte is applied independently according to mask.
func (c *CPU) msrCPSR(v uint32, mask uint8) {
	var byteMask uint32
	if mask&0x1 != 0 {
		byteMask |= 0x000000FF // control byte (mode, T, I, F)
	}
	if mask&0x2 != 0 {
		byteMask |= 0x0000FF00 // extension byte
	}
	if mask&0x4 != 0 {
		byteMask |= 0x00FF0000 // status byte
	}
	if mask&0x8 != 0 {
		byteMask |= 0xFF000000 // flags byte
	}

	newMode := c.cpsr & cpsrModeMask
	if byteMask&0xFF != 0 {
		newMode = v & cpsrModeMask
	}
	if newMode != c.cpsr&cpsrModeMask {
		c.switchMode(newMode)
	}

	c.cpsr = (c.cpsr &^ byteMask) | (v & byteMask)
}

// msrSPSR applies a byte-granular field mask to the current mode's SPSR.
func (c *CPU) msrSPSR(v uint32, mask uint8) {
	mode := c.cpsr & cpsrModeMask
	if !hasSPSR(mode) {
		return
	}
	var byteMask uint32
	if mask&0x1 != 0 {
		byteMask |= 0x000000FF
	}
	if mask&0x2 != 0 {
		byteMask |= 0x0000FF00
	}
	if mask&0x4 != 0 {
		byteMask |= 0x00FF0000
	}
	if mask&0x8 != 0 {
		byteMask |= 0xFF000000
	}
	idx := bankIndex(mode)
	c.spsr[idx] = (c.spsr[idx] &^ byteMask) | (v & byteMask)
}

// swi invokes the supervisor-call trap: bank to supervisor mode, save
// SPSR_svc = CPSR, LR_svc = return address, PC = the SWI vector.
func (c *CPU) swi() {
	c.enterException(ModeSVC, 0x08, false)
}

// load issues a width-aligned bus load, notifying the debugger first.
func (c *CPU) load(w Width, addr uint32) uint32 {
	if c.debugger != nil {
		c.debugger.OnLoad(addr, w)
	}
	switch w {
	case Byte:
		return c.bus.Load8(addr)
	case Halfword:
		return c.bus.Load16(addr)
	default:
		return c.bus.Load32(addr)
	}
}

// store issues a width-aligned bus store, notifying the debugger first.
func (c *CPU) store(w Width, addr, val uint32) {
	if c.debugger != nil {
		c.debugger.OnStore(addr, w, val)
	}
	switch w {
	case Byte:
		c.bus.Store8(addr, val)
	case Halfword:
		c.bus.Store16(addr, val)
	default:
		c.bus.Store32(addr, val)
	}
}

