package arm

// CPSR bit positions.
const (
	cpsrN uint32 = 1 << 31 // Negative
	cpsrZ uint32 = 1 << 30 // Zero
	cpsrC uint32 = 1 << 29 // Carry
	cpsrV uint32 = 1 << 28 // Overflow
	cpsrI uint32 = 1 << 7  // IRQ disable
	cpsrF uint32 = 1 << 6  // FIQ disable
	cpsrT uint32 = 1 << 5  // Thumb state

	cpsrModeMask uint32 = 0x1F
)

func (c *CPU) n() bool { return c.cpsr&cpsrN != 0 }
func (c *CPU) z() bool { return c.cpsr&cpsrZ != 0 }
func (c *CPU) cflag() bool { return c.cpsr&cpsrC != 0 }
func (c *CPU) v() bool { return c.cpsr&cpsrV != 0 }

func (c *CPU) setN(b bool) { c.setFlag(cpsrN, b) }
func (c *CPU) setZ(b bool) { c.setFlag(cpsrZ, b) }
func (c *CPU) setC(b bool) { c.setFlag(cpsrC, b) }
func (c *CPU) setV(b bool) { c.setFlag(cpsrV, b) }

func (c *CPU) setFlag(bit uint32, b bool) {
	if b {
		c.cpsr |= bit
	} else {
		c.cpsr &^= bit
	}
}

// setNZ sets N and Z from a 32-bit result, leaving C/V untouched. Used by
// logical S-variants (AND, EOR, ORR, BIC, MOV, MVN, TST, TEQ) and by MUL/MLA.
func (c *CPU) setNZ(result uint32) {
	c.setN(result&0x80000000 != 0)
	c.setZ(result == 0)
}

// setLogicalFlags sets N, Z, and C (from the shifter carry-out), leaving V
// unchanged, per §4.2/§4.3.
func (c *CPU) setLogicalFlags(result uint32, shifterCarry bool) {
	c.setNZ(result)
	c.setC(shifterCarry)
}

// addOverflow computes signed-overflow for a + b = result.
func addOverflow(a, b, result uint32) bool {
	return (a^b)&0x80000000 == 0 && (a^result)&0x80000000 != 0
}

// subOverflow computes signed-overflow for a - b = result.
func subOverflow(a, b, result uint32) bool {
	return (a^b)&0x80000000 != 0 && (a^result)&0x80000000 != 0
}

// setArithFlagsAdd sets NZCV after a + b = result (unsigned carry-out).
func (c *CPU) setArithFlagsAdd(a, b, result uint32) {
	c.setNZ(result)
	c.setC(result < a)
	c.setV(addOverflow(a, b, result))
}

// setArithFlagsSub sets NZCV after a - b = result. Carry is set when no
// borrow occurred, i.e. a >= b (unsigned).
func (c *CPU) setArithFlagsSub(a, b, result uint32) {
	c.setNZ(result)
	c.setC(a >= b)
	c.setV(subOverflow(a, b, result))
}

// testCondition evaluates a 4-bit ARM condition field against the current
// flags. Code 0b1111 is historically reserved and treated as Unpredictable
// by the caller; testCondition itself only reports the boolean predicate
// for codes 0-14 and returns false for 15 (callers must check for 15 first).
func (c *CPU) testCondition(cond uint8) bool {
	n, z, cf, v := c.n(), c.z(), c.cflag(), c.v()
	switch cond {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS
		return cf
	case 0x3: // CC
		return !cf
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return cf && !z
	case 0x9: // LS
		return !cf || z
	case 0xA: // GE
		return n == v
	case 0xB: // LT
		return n != v
	case 0xC: // GT
		return !z && n == v
	case 0xD: // LE
		return z || n != v
	case 0xE: // AL
		return true
	default: // 0xF, reserved
		return false
	}
}
