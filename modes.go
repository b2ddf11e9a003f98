package arm

// Processor mode field values (CPSR[4:0]).
const (
	ModeUser   uint32 = 0x10
	ModeFIQ    uint32 = 0x11
	ModeIRQ    uint32 = 0x12
	ModeSVC    uint32 = 0x13
	ModeAbort  uint32 = 0x17
	ModeUndef  uint32 = 0x1B
	ModeSystem uint32 = 0x1F
)

// bankIndex maps a mode field to an index into the banked SP/LR/SPSR
// arrays. User and System share bank 0 (they share R13/R14 and neither
// has an SPSR); the remaining five privileged modes get one slot each.
func bankIndex(mode uint32) int {
	switch mode {
	case ModeFIQ:
		return 1
	case ModeIRQ:
		return 2
	case ModeSVC:
		return 3
	case ModeAbort:
		return 4
	case ModeUndef:
		return 5
	default: // ModeUser, ModeSystem, and anything malformed
		return 0
	}
}

// hasSPSR reports whether the given mode has a banked SPSR.
func hasSPSR(mode uint32) bool {
	return mode != ModeUser && mode != ModeSystem
}
