package arm

// indexedAddress is the result of evaluating one of the single load/store
// indexing flavours (offset / pre-indexed / post-indexed): the effective
// address to transfer through, and the base-writeback value if any.
type indexedAddress struct {
	addr          uint32
	writebackAddr uint32
	writeback     bool
}

// addrMode2Offset evaluates the mode-2 (single word/byte load-store)
// offset field: a 12-bit immediate, or a register optionally LSL-scaled
// by an immediate shift amount (word[25] selects register vs immediate,
// the opposite sense of the data-processing I bit).
func addrMode2Offset(c *CPU, word uint32) uint32 {
	if word&(1<<25) == 0 {
		return word & 0xFFF
	}
	rm := c.reg(uint8(word & 0xF))
	st := shiftType((word >> 5) & 0x3)
	shift := (word >> 7) & 0x1F
	v, _ := evalShiftImmediate(c, st, rm, shift)
	return v
}

// addrMode3Offset evaluates the mode-3 (halfword/signed load-store)
// offset field: word[22] selects an 8-bit immediate split across
// word[11:8]/word[3:0], or a plain register.
func addrMode3Offset(c *CPU, word uint32) uint32 {
	if word&(1<<22) != 0 {
		return ((word >> 4) & 0xF0) | (word & 0xF)
	}
	return c.reg(uint8(word & 0xF))
}

// resolveIndexed computes the effective address and writeback value for
// any of the three indexing flavours shared by modes 2 and 3: offset (no
// writeback), pre-indexed with writeback, and post-indexed (writeback is
// implicit). Reports false (after raising an Unpredictable fault) if the
// base is PC or equals Rd under writeback.
func resolveIndexed(c *CPU, word uint32, offset uint32) (indexedAddress, bool) {
	rn := uint8((word >> 16) & 0xF)
	rd := uint8((word >> 12) & 0xF)
	pre := word&(1<<24) != 0
	up := word&(1<<23) != 0
	wBit := word&(1<<21) != 0

	base := c.reg(rn)
	var target uint32
	if up {
		target = base + offset
	} else {
		target = base - offset
	}

	writeback := !pre || wBit
	if writeback {
		if rn == 15 {
			c.fault(Unpredictable, "load/store writeback with PC base")
			return indexedAddress{}, false
		}
		if rd == rn {
			c.fault(Unpredictable, "load/store writeback with Rd == Rn")
			return indexedAddress{}, false
		}
	}

	ea := base
	if pre {
		ea = target
	}
	return indexedAddress{addr: ea, writebackAddr: target, writeback: writeback}, true
}

// ldmStartAddress is addressing-mode 4's start-address computation: given
// P/U and the register-list population count, it returns the address of
// the first transfer and the writeback value, per §4.7.
func ldmStartAddress(base uint32, popcount int, pre, up bool) (start, writebackVal uint32) {
	l := uint32(4 * popcount)
	if up {
		writebackVal = base + l
		if pre {
			return base + 4, writebackVal
		}
		return base, writebackVal
	}
	writebackVal = base - l
	if pre {
		return base - l, writebackVal
	}
	return base - l + 4, writebackVal
}
