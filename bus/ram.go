package bus

// RAM is the device's 2 KiB scratch memory, region 0x00 when the flash
// boot-remap bit is clear.
type RAM struct {
	data [2 * 1024]byte
}

// NewRAM returns a zeroed RAM block.
func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) Load(offset uint32, width int) uint32 {
	return loadLE(r.data[:], offset, width)
}

func (r *RAM) Store(offset uint32, width int, val uint32) {
	storeLE(r.data[:], offset, width, val)
}
