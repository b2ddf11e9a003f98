package arm

// opFunc is the handler signature for a single ARMv4 instruction. The
// full instruction word is already latched in c.ir when called.
type opFunc func(*CPU)

// opcodeTable is the 4096-entry dispatch table indexed by decodeIndex.
// nil entries are unimplemented opcodes.
var opcodeTable [4096]opFunc
