package arm

func init() {
	registerPSRTransfer()
}

// registerPSRTransfer wires MRS (cpsr/spsr -> Rd) and MSR (cpsr/spsr <-
// Rm, field-mask). Both share the 0001 0 R xx top8 prefix: MRS has
// bits[21:20]=00 (low4=0x0, Rd in bits[15:12], bits[19:16] must be
// 1111 and bits[11:0] zero);
// MSR has bits[21:20]=10 (low4=0x0, Rm in bits[3:0], field-mask in
// bits[19:16]).
func registerPSRTransfer() {
	for r := uint32(0); r <= 1; r++ {
		mrsTop8 := 0x10 | (r << 2)
		opcodeTable[(mrsTop8<<4)|0x0] = opMRS

		msrTop8 := 0x12 | (r << 2)
		opcodeTable[(msrTop8<<4)|0x0] = opMSR
	}
}

// opMRS copies CPSR or SPSR into Rd.
func opMRS(c *CPU) {
	word := c.ir
	if word&0xF0FFF != 0xF0000 {
		c.fault(Malformed, "MRS with non-canonical field bits")
		return
	}
	spsrForm := word&(1<<22) != 0
	rd := uint8((word >> 12) & 0xF)
	if spsrForm {
		if rd == 15 {
			c.fault(Unpredictable, "MRS with PC destination (SPSR form)")
			return
		}
		c.setReg(rd, c.spsrVal())
	} else {
		c.setReg(rd, c.cpsrVal())
	}
}

// opMSR writes CPSR or SPSR from Rm under a byte-granular field mask
// (word[19:16]); each field byte is applied independently per the
// mask bits. word[15:8] must read 1111 0000; the table index doesn't
// cover these bits, so they are checked here.
func opMSR(c *CPU) {
	word := c.ir
	if word&0xFF00 != 0xF000 {
		c.fault(Malformed, "MSR with non-canonical field bits")
		return
	}
	spsrForm := word&(1<<22) != 0
	mask := uint8((word >> 16) & 0xF)
	rm := uint8(word & 0xF)
	v := c.reg(rm)

	if spsrForm {
		c.msrSPSR(v, mask)
	} else {
		c.msrCPSR(v, mask)
	}
}
