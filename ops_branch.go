package arm

func init() {
	registerBranch()
	registerBX()
}

// registerBranch wires B/BL. top8 = 101,L,oooo where the four low bits
// of top8 are offset bits [23:20] and low4 is offset bits [7:4] —
// unconstrained by dispatch, so every combination maps to the same
// kernel; the offset is re-read from the full word at execution time.
func registerBranch() {
	for l := uint32(0); l <= 1; l++ {
		for hi := uint32(0); hi < 16; hi++ {
			top8 := 0xA0 | (l << 4) | hi
			for low4 := uint32(0); low4 < 16; low4++ {
				opcodeTable[(top8<<4)|low4] = opBranch
			}
		}
	}
}

// registerBX wires the single BX Rm slot: top8=0x12, low4=0x1.
func registerBX() {
	opcodeTable[(0x12<<4)|0x1] = opBX
}

// opBranch implements B and BL: sign-extend the 24-bit word offset to 26
// bits (word<<2, arithmetic), new_pc = PC + offset. BL additionally sets
// LR to the address of the instruction following the branch.
func opBranch(c *CPU) {
	word := c.ir
	link := word&(1<<24) != 0

	offset := int32(word<<8) >> 6 // sign-extend 24-bit field, scale by 4
	newPC := uint32(int32(c.pc+8) + offset)

	if link {
		c.setReg(14, c.pc+4)
	}
	c.setPC(newPC)
}

// opBX implements BX Rm: thumb_bit = Rm[0], new_pc = Rm & ~1.
func opBX(c *CPU) {
	word := c.ir
	if (word>>4)&0xFFFF != 0xFFF1 {
		c.fault(Malformed, "BX with non-canonical tail bits")
		return
	}
	rm := uint8(word & 0xF)
	v := c.reg(rm)
	c.setPCThumb(v&^1, v&1 != 0)
}
