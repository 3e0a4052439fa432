package transport

import "github.com/Manu343726/escarabajo/pkg/utils"

// Loopback is an in-memory transport backed by a plain register file. It
// stands in for real hardware in the CLI and in tests; the access counters
// let tests assert that the cache elided a hardware access.
type Loopback struct {
	values map[uint32][]byte

	// Register numbers whose accesses fail, simulating a broken link
	FailReads  map[uint32]bool
	FailWrites map[uint32]bool

	Reads  int
	Writes int
}

var _ Transport = (*Loopback)(nil)

func NewLoopback() *Loopback {
	return &Loopback{
		values:     map[uint32][]byte{},
		FailReads:  map[uint32]bool{},
		FailWrites: map[uint32]bool{},
	}
}

func (l *Loopback) ReadRegister(number uint32, size uint) ([]byte, error) {
	l.Reads++

	if l.FailReads[number] {
		return nil, utils.MakeError(ErrHardwareAccess, "read of register %d", number)
	}

	buf := make([]byte, size)
	copy(buf, l.values[number])
	return buf, nil
}

func (l *Loopback) WriteRegister(number uint32, value []byte) error {
	l.Writes++

	if l.FailWrites[number] {
		return utils.MakeError(ErrHardwareAccess, "write of register %d", number)
	}

	buf := make([]byte, len(value))
	copy(buf, value)
	l.values[number] = buf
	return nil
}

// Poke sets a register value behind the debugger's back, the way running
// target code would.
func (l *Loopback) Poke(number uint32, value uint64, size uint) {
	buf := make([]byte, size)
	utils.PutUint(buf, value)
	l.values[number] = buf
}
