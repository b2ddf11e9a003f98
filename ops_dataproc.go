package arm

func init() {
	registerDataProc()
}

// dataProcOpcodes lists the word[24:21] opcodes this firmware reaches,
// per §4.3's table. 6 (SBC) and 7 (RSC) are absent from that table and
// are intentionally left unimplemented.
var dataProcOpcodes = []uint32{0, 1, 2, 3, 4, 5, 8, 9, 10, 11, 12, 13, 14, 15}

// registerDataProc populates the dispatch table for the fourteen
// data-processing opcodes across both operand-2 forms.
//
//   - Immediate operand (I=1, word[25]): low4 holds the low nibble of the
//     8-bit immediate and is unconstrained, so all 16 values are wired.
//   - Register operand (I=0): low4 is the shift descriptor. Only the
//     twelve patterns with bit4==0 (shift-by-immediate) or bit4==1 &&
//     bit7==0 (shift-by-register) belong to data processing; the four
//     patterns with bit4==1 && bit7==1 are left to the multiply (0x9) and
//     halfword-transfer (0xB/0xD/0xF) kernels.
//
// TST/TEQ/CMP/CMN (opcodes 8-11) only occupy the S=1 slots: with S=0 the
// same bit pattern is architecturally PSR transfer / BX, registered by
// ops_psr.go and ops_branch.go.
func registerDataProc() {
	for _, opcode := range dataProcOpcodes {
		isCompareOnly := opcode >= 8 && opcode <= 11
		for s := uint32(0); s <= 1; s++ {
			if isCompareOnly && s == 0 {
				continue
			}

			// Immediate operand: all 16 low4 values.
			for low4 := uint32(0); low4 < 16; low4++ {
				top8 := (1 << 5) | (opcode << 1) | s
				opcodeTable[(top8<<4)|low4] = opDataProc
			}

			// Register operand, shift-by-immediate: bit4==0.
			for _, low4 := range []uint32{0x0, 0x2, 0x4, 0x6, 0x8, 0xA, 0xC, 0xE} {
				top8 := (opcode << 1) | s
				opcodeTable[(top8<<4)|low4] = opDataProc
			}
			// Register operand, shift-by-register: bit4==1, bit7==0.
			for _, low4 := range []uint32{0x1, 0x3, 0x5, 0x7} {
				top8 := (opcode << 1) | s
				opcodeTable[(top8<<4)|low4] = opDataProc
			}
		}
	}
}

// opDataProc is the shared kernel for all fourteen data-processing
// opcodes; the operation is selected at runtime from the latched
// instruction word, per the small-enum-dispatch design note in §9.
func opDataProc(c *CPU) {
	word := c.ir
	opcode := (word >> 21) & 0xF
	s := word&(1<<20) != 0
	rn := uint8((word >> 16) & 0xF)
	rd := uint8((word >> 12) & 0xF)

	a := c.reg(rn)
	b, shifterCarry := evalOperand2(c, word)

	isCompareOnly := opcode == 8 || opcode == 9 || opcode == 10 || opcode == 11
	if isCompareOnly && rd != 0 {
		c.fault(Malformed, "TST/TEQ/CMP/CMN with non-zero Rd")
		return
	}
	isMoveOnly := opcode == 13 || opcode == 15
	if isMoveOnly && rn != 0 {
		c.fault(Malformed, "MOV/MVN with non-zero Rn")
		return
	}
	if s && !isCompareOnly && rd == 15 {
		c.fault(Unpredictable, "S-suffixed data-processing with PC destination")
		return
	}

	var result uint32
	switch opcode {
	case 0: // AND
		result = a & b
	case 1: // EOR
		result = a ^ b
	case 2: // SUB
		result = a - b
	case 3: // RSB
		result = b - a
	case 4: // ADD
		result = a + b
	case 5: // ADC
		carry := uint32(0)
		if c.cflag() {
			carry = 1
		}
		result = a + b + carry
	case 8: // TST
		result = a & b
	case 9: // TEQ
		result = a ^ b
	case 10: // CMP
		result = a - b
	case 11: // CMN
		result = a + b
	case 12: // ORR
		result = a | b
	case 13: // MOV
		result = b
	case 14: // BIC
		result = a &^ b
	case 15: // MVN
		result = ^b
	}

	if s {
		switch opcode {
		case 2, 10: // SUB, CMP
			c.setArithFlagsSub(a, b, result)
		case 3: // RSB
			c.setArithFlagsSub(b, a, result)
		case 4, 11: // ADD, CMN
			c.setArithFlagsAdd(a, b, result)
		case 5: // ADC: flags defined but S-form out of scope per §4.3
		default: // AND/EOR/TST/TEQ/ORR/MOV/BIC/MVN
			c.setLogicalFlags(result, shifterCarry)
		}
	}

	if !isCompareOnly {
		c.setReg(rd, result)
	}
}
