package arm

import "math/bits"

func init() {
	registerBlockTransfer()
}

// registerBlockTransfer wires LDM/STM. top8 = 100,P,U,S,W,L; the 16-bit
// register list spans bits[15:0], so low4 (bits[7:4], the R4-R7 presence
// flags) varies with the list itself and every value must dispatch to
// the same kernel — the list is decoded again from the full word inside
// the handler.
func registerBlockTransfer() {
	for p := uint32(0); p <= 1; p++ {
		for u := uint32(0); u <= 1; u++ {
			for s := uint32(0); s <= 1; s++ {
				for w := uint32(0); w <= 1; w++ {
					for l := uint32(0); l <= 1; l++ {
						top8 := 0x80 | (p << 4) | (u << 3) | (s << 2) | (w << 1) | l
						for low4 := uint32(0); low4 < 16; low4++ {
							opcodeTable[(top8<<4)|low4] = opBlockTransfer
						}
					}
				}
			}
		}
	}
}

// userReg/setUserReg read and write the user-mode view of a register,
// used by LDM(2)/STM(^) regardless of the CPU's current mode. Only
// R13/R14 are banked in this core (see modes.go), so for R0-R12 this is
// the same storage as the current-mode view.
func (c *CPU) userReg(i uint8) uint32 {
	switch i {
	case 13:
		return c.bankedR13[0]
	case 14:
		return c.bankedR14[0]
	default:
		return c.r[i]
	}
}

func (c *CPU) setUserReg(i uint8, v uint32) {
	switch i {
	case 13:
		c.bankedR13[0] = v
	case 14:
		c.bankedR14[0] = v
	default:
		c.r[i] = v
	}
}

// opBlockTransfer implements LDM/STM, including the LDM(2) (S=1, PC not
// listed: user-bank registers) and LDM(3) (S=1, PC listed: ordinary load
// plus an atomic PC+CPSR restore from SPSR) variants.
func opBlockTransfer(c *CPU) {
	word := c.ir
	rn := uint8((word >> 16) & 0xF)
	list := word & 0xFFFF
	pre := word&(1<<24) != 0
	up := word&(1<<23) != 0
	sBit := word&(1<<22) != 0
	wBit := word&(1<<21) != 0
	load := word&(1<<20) != 0

	if list == 0 {
		c.fault(Unpredictable, "LDM/STM with empty register list")
		return
	}
	if rn == 15 {
		c.fault(Unpredictable, "LDM/STM with PC as base")
		return
	}
	if wBit && list&(1<<rn) != 0 {
		c.fault(Unpredictable, "LDM/STM writeback with base in register list")
		return
	}
	if !load && list&(1<<15) != 0 {
		c.fault(Unpredictable, "STM with PC in register list")
		return
	}

	n := bits.OnesCount16(uint16(list))
	base := c.reg(rn)
	start, writebackVal := ldmStartAddress(base, n, pre, up)

	ldm3 := load && sBit && list&(1<<15) != 0
	userBank := sBit && !ldm3

	addr := start
	var deferredPCWord uint32
	for i := uint8(0); i < 16; i++ {
		if list&(1<<i) == 0 {
			continue
		}
		if ldm3 && i == 15 {
			deferredPCWord = c.load(Word, addr)
			addr += 4
			continue
		}
		if load {
			v := c.load(Word, addr)
			if userBank {
				c.setUserReg(i, v)
			} else {
				c.setReg(i, v)
			}
		} else {
			var v uint32
			if userBank {
				v = c.userReg(i)
			} else {
				v = c.reg(i)
			}
			c.store(Word, addr, v)
		}
		addr += 4
	}

	if wBit {
		c.setReg(rn, writebackVal)
	}

	if ldm3 {
		c.setPCCPSR(deferredPCWord&^3, c.spsrVal())
	}
}
