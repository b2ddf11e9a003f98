package arm

func init() {
	registerMultiply()
}

// registerMultiply wires MUL (A=0) and MLA (A=1) across the S bit. Both
// occupy top8 bits[27:22]==000000 with low4==1001, per §4.4.
func registerMultiply() {
	for a := uint32(0); a <= 1; a++ {
		for s := uint32(0); s <= 1; s++ {
			top8 := (a << 1) | s
			opcodeTable[(top8<<4)|0x9] = opMultiply
		}
	}
}

// opMultiply implements MUL/MLA. Note the field swap relative to ordinary
// data processing: the destination register number is encoded in the Rn
// field, and for MLA the accumulator is in the Rd field.
func opMultiply(c *CPU) {
	word := c.ir
	a := word&(1<<21) != 0
	s := word&(1<<20) != 0
	rdField := uint8((word >> 16) & 0xF) // destination
	rnField := uint8((word >> 12) & 0xF) // accumulator (MLA only)
	rs := uint8((word >> 8) & 0xF)
	rm := uint8(word & 0xF)

	if rdField == 15 || rs == 15 || rm == 15 || (a && rnField == 15) {
		c.fault(Unpredictable, "multiply operand is PC")
		return
	}

	result := c.reg(rm) * c.reg(rs)
	if a {
		result += c.reg(rnField)
	}

	if s {
		c.setNZ(result)
	}
	c.setReg(rdField, result)
}
