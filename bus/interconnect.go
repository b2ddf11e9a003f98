// Package bus implements the device's memory map: RAM, boot ROM,
// cartridge flash, and the small set of memory-mapped peripherals
// (LCD, DAC, IrDA, RTC, three timers, and the interrupt controller)
// behind a single region-dispatching Interconnect.
//
// None of this is part of the CPU interpreter's contract — package arm
// only ever sees the six-method Bus/Debugger interfaces — but a
// complete emulator needs a real implementation of that interface
// sitting behind it, so it lives here rather than in a test double.
package bus

import "log"

const (
	regionBIOSOrRAM = 0x00
	regionVirtual   = 0x02
	regionBIOS      = 0x04
	regionConfig    = 0x06
	regionRaw       = 0x08
	regionIO        = 0x0a
	regionClockRTC  = 0x0b
	regionComIrDA   = 0x0c
	regionLCDDAC    = 0x0d
)

// Interconnect is the top-level memory bus, implementing the CPU
// package's Bus interface by dispatching on the high byte of the
// address exactly as the reference memory map does.
type Interconnect struct {
	bios  *BIOS
	flash *Flash
	ram   *RAM

	irq    *IRQController
	timers [3]*Timer
	rtc    *RTC
	lcd    *LCD
	dac    *DAC
	irda   *IrDA

	cpuClkDiv  uint8
	frameTicks uint32
	iopCtrl    uint8
}

// NewInterconnect wires together a full memory map from the given BIOS
// and cartridge flash images.
func NewInterconnect(biosImage, flashImage []byte) *Interconnect {
	return &Interconnect{
		bios:  NewBIOS(biosImage),
		flash: NewFlash(flashImage),
		ram:   NewRAM(),
		irq:   NewIRQController(),
		timers: [3]*Timer{
			NewTimer(IntTimer0),
			NewTimer(IntTimer1),
			NewTimer(IntTimer2),
		},
		rtc:       NewRTC(),
		lcd:       NewLCD(),
		dac:       NewDAC(),
		irda:      NewIrDA(),
		cpuClkDiv: 7,
	}
}

// Reset restores the flash boot-remap bit, mirroring the reference
// power-on sequence.
func (ic *Interconnect) Reset() {
	ic.flash.Reset()
}

// IRQPending reports whether any unmasked interrupt line is high.
func (ic *Interconnect) IRQPending() bool {
	return ic.irq.Pending()
}

// Tick advances every clocked peripheral by cpuTicks CPU cycles. The
// RTC and DAC run off the master clock (cpuTicks scaled by the
// programmable divider); the three timers run off the CPU clock
// directly, per the reference implementation.
func (ic *Interconnect) Tick(cpuTicks uint32) {
	masterTicks := cpuTicks << ic.cpuClkDiv

	ic.rtc.Tick(ic.irq, masterTicks)
	ic.dac.Tick(masterTicks)

	for _, t := range ic.timers {
		t.Tick(ic.irq, cpuTicks)
	}

	ic.frameTicks += masterTicks
}

func (ic *Interconnect) load(addr uint32, width int) uint32 {
	region := addr >> 24
	offset := addr & 0xffffff

	switch region {
	case regionBIOSOrRAM:
		if ic.flash.BIOSAt0() {
			return ic.bios.Load(offset, width)
		}
		return ic.ram.Load(offset, width)
	case regionVirtual:
		return ic.flash.LoadVirtual(offset, width)
	case regionBIOS:
		return ic.bios.Load(offset, width)
	case regionConfig:
		return ic.flash.LoadConfig(offset, width)
	case regionRaw:
		return ic.flash.LoadRaw(offset, width)
	case regionIO:
		switch {
		case offset <= 0x10:
			return ic.irq.Load(offset, width)
		case offset >= 0x800000 && offset <= 0x800028:
			timer := (offset >> 8) & 3
			if int(timer) < len(ic.timers) {
				return ic.timers[timer].Load(offset&0xf, width)
			}
		}
	case regionClockRTC:
		switch {
		case offset == 0:
			div := 7 - ic.cpuClkDiv
			return 0x10 | uint32(div)
		case offset >= 0x800000 && offset <= 0x80000c:
			return ic.rtc.Load(offset&0xf, width)
		}
	case regionComIrDA:
		switch offset {
		case 0x800000:
			return ic.irda.Load(0, width)
		case 0x800004:
			return ic.irda.Load(4, width)
		}
	case regionLCDDAC:
		switch {
		case offset <= 0x1ff:
			return ic.lcd.Load(offset, width)
		case offset == 0x800000:
			return uint32(ic.iopCtrl)
		case offset == 0x800010:
			return ic.dac.Load(0, width)
		case offset == 0x800014:
			return ic.dac.Load(4, width)
		}
	}

	log.Printf("[bus] unhandled load at %#08x", addr)
	return 0
}

func (ic *Interconnect) store(addr uint32, width int, val uint32) {
	region := addr >> 24
	offset := addr & 0xffffff

	switch region {
	case regionBIOSOrRAM:
		if !ic.flash.BIOSAt0() {
			ic.ram.Store(offset, width, val)
		}
		return
	case regionConfig:
		ic.flash.StoreConfig(offset, width, val)
		return
	case regionRaw:
		ic.flash.StoreRaw(offset, width, val)
		return
	case regionIO:
		switch {
		case offset <= 0x10:
			ic.irq.Store(offset, width, val)
			return
		case offset >= 0x800000 && offset <= 0x800028:
			// Store-side timer select uses bits [5:4]; the load side uses
			// [9:8]. The reference firmware's decode genuinely differs
			// between the two directions, so this is carried faithfully
			// rather than "fixed".
			timer := (offset >> 4) & 3
			if int(timer) < len(ic.timers) {
				ic.timers[timer].Store(offset&0xf, width, val)
				return
			}
		}
	case regionClockRTC:
		switch {
		case offset == 0:
			ic.cpuClkDiv = 7 - uint8(val&0x7)
			return
		case offset >= 0x800000 && offset <= 0x80000c:
			ic.rtc.Store(offset&0xf, width, val)
			return
		}
	case regionComIrDA:
		switch offset {
		case 0x800000:
			ic.irda.Store(0, width, val)
			return
		case 0x800004:
			ic.irda.Store(4, width, val)
			return
		}
	case regionLCDDAC:
		switch {
		case offset <= 0x1ff:
			ic.lcd.Store(offset, width, val)
			return
		case offset == 0x800000:
			ic.iopCtrl = byte(val)
			return
		case offset == 0x800010:
			ic.dac.Store(0, width, val)
			return
		case offset == 0x800014:
			ic.dac.Store(4, width, val)
			return
		}
	}

	log.Printf("[bus] unhandled store at %#08x = %#x", addr, val)
}

// Load8, Load16, Load32, Store8, Store16, and Store32 implement the CPU
// package's Bus interface.
func (ic *Interconnect) Load8(addr uint32) uint32  { return ic.load(addr, 1) }
func (ic *Interconnect) Load16(addr uint32) uint32 { return ic.load(addr, 2) }
func (ic *Interconnect) Load32(addr uint32) uint32 { return ic.load(addr, 4) }

func (ic *Interconnect) Store8(addr uint32, val uint32)  { ic.store(addr, 1, val) }
func (ic *Interconnect) Store16(addr uint32, val uint32) { ic.store(addr, 2, val) }
func (ic *Interconnect) Store32(addr uint32, val uint32) { ic.store(addr, 4, val) }
