// Package transport abstracts the debug transport that performs physical
// register accesses on the target, typically over JTAG. The register core
// calls into it only when the cacheability policy says a cached value cannot
// be trusted; retry and timeout policy belong to the transport, a failure
// reported here is terminal for that access.
package transport

import "errors"

var ErrHardwareAccess = errors.New("hardware access failure")

// Transport performs physical register accesses on one target. Calls are
// synchronous and are issued from the target's single session thread.
type Transport interface {
	// ReadRegister reads size bytes of register number from hardware
	ReadRegister(number uint32, size uint) ([]byte, error)

	// WriteRegister writes the value to register number on hardware
	WriteRegister(number uint32, value []byte) error
}
