package bus

// Timer is one of the three periodic counters in region 0x0a, offsets
// 0x800000-0x800028 (one 0x10-byte window per unit, selected by the
// interconnect from bits [9:8] of the offset on load and bits [5:4] on
// store per the original firmware's address decode).
type Timer struct {
	irqSource Interrupt

	counter uint16
	target  uint16
	enabled bool
	divider uint32
}

// NewTimer returns a stopped timer that raises irqSource on reload.
func NewTimer(irqSource Interrupt) *Timer {
	return &Timer{irqSource: irqSource}
}

// Tick advances the timer by cpuTicks CPU cycles and raises its
// interrupt source on every reload.
func (t *Timer) Tick(irq *IRQController, cpuTicks uint32) {
	if !t.enabled {
		return
	}
	t.divider += cpuTicks
	for t.divider >= 256 {
		t.divider -= 256
		if t.counter == t.target {
			t.counter = 0
			irq.SetRawInterrupt(t.irqSource, true)
		} else {
			t.counter++
		}
	}
}

func (t *Timer) Load(offset uint32, width int) uint32 {
	switch offset & 0xf {
	case 0x0:
		return uint32(t.counter)
	case 0x4:
		return uint32(t.target)
	case 0x8:
		if t.enabled {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (t *Timer) Store(offset uint32, width int, val uint32) {
	switch offset & 0xf {
	case 0x0:
		t.counter = uint16(val)
	case 0x4:
		t.target = uint16(val)
	case 0x8:
		t.enabled = val&1 != 0
	}
}
