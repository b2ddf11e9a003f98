package arm

func init() {
	registerSingleTransfer()
	registerHalfwordTransfer()
}

// registerSingleTransfer wires LDR/STR/LDRB/STRB (addressing mode 2).
// top8 = 01,I,P,U,B,W,L. Immediate-offset (I=0) leaves low4 holding
// bits [7:4] of a 12-bit immediate (unconstrained, all 16 values);
// register-offset (I=1) reuses the shift-by-immediate descriptor, so
// only the eight low4 patterns with bit4==0 are valid.
func registerSingleTransfer() {
	for i := uint32(0); i <= 1; i++ {
		for p := uint32(0); p <= 1; p++ {
			for u := uint32(0); u <= 1; u++ {
				for b := uint32(0); b <= 1; b++ {
					for w := uint32(0); w <= 1; w++ {
						for l := uint32(0); l <= 1; l++ {
							top8 := 0x40 | (i << 5) | (p << 4) | (u << 3) | (b << 2) | (w << 1) | l
							if i == 0 {
								for low4 := uint32(0); low4 < 16; low4++ {
									opcodeTable[(top8<<4)|low4] = opSingleTransfer
								}
							} else {
								for _, low4 := range []uint32{0x0, 0x2, 0x4, 0x6, 0x8, 0xA, 0xC, 0xE} {
									opcodeTable[(top8<<4)|low4] = opSingleTransfer
								}
							}
						}
					}
				}
			}
		}
	}
}

// registerHalfwordTransfer wires LDRH/STRH/LDRSB/LDRSH (addressing
// mode 3). top8 = 000,P,U,I,W,L; low4 = 1,SH,1 with SH in {01,10,11}
// (SH==00 is the SWP encoding and is never registered here). STRH is
// the only valid store (SH must be 01 when L==0).
func registerHalfwordTransfer() {
	for p := uint32(0); p <= 1; p++ {
		for u := uint32(0); u <= 1; u++ {
			for i := uint32(0); i <= 1; i++ {
				for w := uint32(0); w <= 1; w++ {
					for l := uint32(0); l <= 1; l++ {
						top8 := (p << 4) | (u << 3) | (i << 2) | (w << 1) | l
						for sh := uint32(1); sh <= 3; sh++ {
							if l == 0 && sh != 1 {
								continue
							}
							low4 := 0x9 | (sh << 1)
							opcodeTable[(top8<<4)|low4] = opHalfwordTransfer
						}
					}
				}
			}
		}
	}
}

// opSingleTransfer implements LDR/STR/LDRB/STRB.
func opSingleTransfer(c *CPU) {
	word := c.ir
	rd := uint8((word >> 12) & 0xF)
	load := word&(1<<20) != 0
	byteAccess := word&(1<<22) != 0

	offset := addrMode2Offset(c, word)
	idx, ok := resolveIndexed(c, word, offset)
	if !ok {
		return
	}

	if load {
		var v uint32
		if byteAccess {
			v = c.load(Byte, idx.addr) & 0xFF
		} else {
			aligned := idx.addr &^ 3
			raw := c.load(Word, aligned)
			v = ror32(raw, 8*(idx.addr&3))
		}
		if idx.writeback {
			c.setReg(uint8((word>>16)&0xF), idx.writebackAddr)
		}
		c.setRegPCMask(rd, v)
		return
	}

	if rd == 15 {
		c.fault(Unpredictable, "STR with PC as source register")
		return
	}
	v := c.reg(rd)
	if byteAccess {
		c.store(Byte, idx.addr, v&0xFF)
	} else {
		c.store(Word, idx.addr, v)
	}
	if idx.writeback {
		c.setReg(uint8((word>>16)&0xF), idx.writebackAddr)
	}
}

// opHalfwordTransfer implements LDRH/STRH/LDRSB/LDRSH.
func opHalfwordTransfer(c *CPU) {
	word := c.ir
	rd := uint8((word >> 12) & 0xF)
	load := word&(1<<20) != 0
	sh := (word >> 5) & 0x3

	offset := addrMode3Offset(c, word)
	idx, ok := resolveIndexed(c, word, offset)
	if !ok {
		return
	}

	if load {
		var v uint32
		switch sh {
		case 1: // LDRH
			v = c.load(Halfword, idx.addr) & 0xFFFF
		case 2: // LDRSB
			v = uint32(int32(int8(c.load(Byte, idx.addr))))
		case 3: // LDRSH
			v = uint32(int32(int16(c.load(Halfword, idx.addr))))
		}
		if idx.writeback {
			c.setReg(uint8((word>>16)&0xF), idx.writebackAddr)
		}
		c.setRegPCMask(rd, v)
		return
	}

	if rd == 15 {
		c.fault(Unpredictable, "STRH with PC as source register")
		return
	}
	c.store(Halfword, idx.addr, c.reg(rd)&0xFFFF)
	if idx.writeback {
		c.setReg(uint8((word>>16)&0xF), idx.writebackAddr)
	}
}
