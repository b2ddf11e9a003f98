package bus

// BIOSSize is the fixed ROM size: 16 KiB.
const BIOSSize = 16 * 1024

// BIOS is the device's boot ROM, mapped at region 0x04 always and at
// region 0x00 while Flash's boot-remap bit is set.
type BIOS struct {
	data [BIOSSize]byte
}

// NewBIOS loads image into a fresh BIOS. image longer than BIOSSize is
// truncated; shorter is zero-padded at the tail.
func NewBIOS(image []byte) *BIOS {
	b := &BIOS{}
	n := copy(b.data[:], image)
	_ = n
	return b
}

func (b *BIOS) Load(offset uint32, width int) uint32 {
	return loadLE(b.data[:], offset, width)
}

// Store is a no-op: the BIOS region is read-only.
func (b *BIOS) Store(offset uint32, width int, val uint32) {}
