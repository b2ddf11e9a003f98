package bus

// lcdRegionSize covers the control registers plus the framebuffer window
// at region 0x0d, offsets 0..0x1ff.
const lcdRegionSize = 0x200

// LCD is the memory-mapped display controller.
type LCD struct {
	regs [lcdRegionSize]byte
}

// NewLCD returns a zeroed LCD controller.
func NewLCD() *LCD {
	return &LCD{}
}

func (l *LCD) Load(offset uint32, width int) uint32 {
	return loadLE(l.regs[:], offset, width)
}

func (l *LCD) Store(offset uint32, width int, val uint32) {
	storeLE(l.regs[:], offset, width, val)
}
