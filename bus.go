package arm

// Bus provides byte-addressable memory access for the CPU.
// The interpreter only ever issues accesses aligned to their width;
// alignment enforcement and any fault reporting belong to the bus.
type Bus interface {
	Load8(addr uint32) uint32
	Load16(addr uint32) uint32
	Load32(addr uint32) uint32
	Store8(addr uint32, val uint32)
	Store16(addr uint32, val uint32)
	Store32(addr uint32, val uint32)
}

// Debugger is optionally implemented by a host that wants a callback
// before every memory access the CPU issues. Neither callback may
// influence control flow.
type Debugger interface {
	OnLoad(addr uint32, width Width)
	OnStore(addr uint32, width Width, value uint32)
}
