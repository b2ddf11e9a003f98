package arm

// shiftType is the 2-bit word[6:5] shift-type field shared by both the
// shift-by-immediate and shift-by-register operand-2 forms.
type shiftType uint8

const (
	shiftLSL shiftType = 0
	shiftLSR shiftType = 1
	shiftASR shiftType = 2
	shiftROR shiftType = 3
)

func ror32(v uint32, amt uint32) uint32 {
	amt &= 31
	if amt == 0 {
		return v
	}
	return (v >> amt) | (v << (32 - amt))
}

// evalOperand2 is addressing-mode 1: it evaluates the data-processing
// second operand and its shifter carry-out, used only by S-suffixed
// logical operations and the flag-only test kernels.
func evalOperand2(c *CPU, word uint32) (value uint32, shifterCarry bool) {
	if word&(1<<25) != 0 {
		return evalImmediateRotated(c, word)
	}
	rm := c.reg(uint8(word & 0xF))
	st := shiftType((word >> 5) & 0x3)
	if word&(1<<4) == 0 {
		shift := (word >> 7) & 0x1F
		return evalShiftImmediate(c, st, rm, shift)
	}
	rs := c.reg(uint8((word >> 8) & 0xF))
	return evalShiftRegister(c, st, rm, rs&0xFF)
}

// evalImmediateRotated: operand = zext8(word[7:0]) ror (2*word[11:8]).
func evalImmediateRotated(c *CPU, word uint32) (uint32, bool) {
	imm := word & 0xFF
	rot := ((word >> 8) & 0xF) * 2
	if rot == 0 {
		return imm, c.cflag()
	}
	v := ror32(imm, rot)
	return v, v&0x80000000 != 0
}

// evalShiftImmediate implements the four immediate-amount shift/rotate
// forms, including the shift==0 special cases (LSL passthrough, LSR/ASR
// shift-by-32 encoding, and ROR's shift==0 meaning RRX).
func evalShiftImmediate(c *CPU, st shiftType, rm, shift uint32) (uint32, bool) {
	switch st {
	case shiftLSL:
		if shift == 0 {
			return rm, c.cflag()
		}
		return rm << shift, (rm>>(32-shift))&1 != 0
	case shiftLSR:
		if shift == 0 {
			return 0, rm&0x80000000 != 0
		}
		return rm >> shift, (rm>>(shift-1))&1 != 0
	case shiftASR:
		if shift == 0 {
			if rm&0x80000000 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		return uint32(int32(rm) >> shift), (rm>>(shift-1))&1 != 0
	default: // shiftROR
		if shift == 0 {
			carryIn := uint32(0)
			if c.cflag() {
				carryIn = 1
			}
			return (carryIn << 31) | (rm >> 1), rm&1 != 0
		}
		return ror32(rm, shift), (rm>>(shift-1))&1 != 0
	}
}

// evalShiftRegister implements the register-shifted forms, where the
// runtime shift amount is the low byte of Rs and can range over [0,255]
// with the degenerate behaviour documented in §4.2.
func evalShiftRegister(c *CPU, st shiftType, rm, amt uint32) (uint32, bool) {
	switch st {
	case shiftLSL:
		switch {
		case amt == 0:
			return rm, c.cflag()
		case amt < 32:
			return rm << amt, (rm>>(32-amt))&1 != 0
		case amt == 32:
			return 0, rm&1 != 0
		default:
			return 0, false
		}
	case shiftLSR:
		switch {
		case amt == 0:
			return rm, c.cflag()
		case amt < 32:
			return rm >> amt, (rm>>(amt-1))&1 != 0
		case amt == 32:
			return 0, rm&0x80000000 != 0
		default:
			return 0, false
		}
	case shiftASR:
		switch {
		case amt == 0:
			return rm, c.cflag()
		case amt < 32:
			return uint32(int32(rm) >> amt), (rm>>(amt-1))&1 != 0
		default:
			if rm&0x80000000 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
	default: // shiftROR
		switch {
		case amt == 0:
			return rm, c.cflag()
		case amt&0x1F == 0:
			return rm, rm&0x80000000 != 0
		default:
			rot := amt & 0x1F
			return ror32(rm, rot), (rm>>(rot-1))&1 != 0
		}
	}
}
