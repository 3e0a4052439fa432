package regcache

import (
	"errors"
	"strconv"

	"github.com/Manu343726/escarabajo/pkg/target/regs"
	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
	"github.com/Manu343726/escarabajo/pkg/utils"
)

var ErrUnknownCsrName = errors.New("unknown CSR name")

// Exposer grows and shrinks the register set beyond the architecturally fixed
// entries, driven by the user's extra-CSR configuration. Exposed entries keep
// their numbers for the whole expose/hide cycle: protocol consumers may hold
// onto a number, so hiding never renumbers anything.
//
// Any target-description artifact built from the cache is stale after Expose
// or Hide; rebuilding it is the caller's business.
type Exposer struct {
	cache   *Cache
	csrType *regtypes.Descriptor
	probe   func(addr uint16) bool
	exposed map[uint16]uint32
}

// NewExposer returns an exposure manager for the cache. csrType is the scalar
// type of a CSR on this target; probe reports whether the hardware implements
// a given CSR address (nil means assume it does).
func NewExposer(cache *Cache, csrType *regtypes.Descriptor, probe func(addr uint16) bool) *Exposer {
	return &Exposer{
		cache:   cache,
		csrType: csrType,
		probe:   probe,
		exposed: map[uint16]uint32{},
	}
}

// resolve turns a CSR reference, either a well known name or a numeric
// address like "0x7c0", into a CSR address.
func (e *Exposer) resolve(ref string) (uint16, error) {
	if addr, err := strconv.ParseUint(ref, 0, 16); err == nil && addr <= 0xfff {
		return uint16(addr), nil
	}

	if addr, ok := regs.CsrAddress(ref); ok {
		return addr, nil
	}

	return 0, utils.MakeError(ErrUnknownCsrName, "%q", ref)
}

// Expose appends one initialized entry per requested CSR that the register
// set does not cover yet and returns how many were added. Requests already
// covered, by the fixed set or by an earlier Expose, are skipped, so exposing
// the same list twice adds nothing the second time.
func (e *Exposer) Expose(list []string) (int, error) {
	added := 0

	for _, ref := range list {
		addr, err := e.resolve(ref)
		if err != nil {
			return added, err
		}

		if _, ok := regs.FixedCsrByAddress(addr); ok {
			continue
		}
		if _, ok := e.exposed[addr]; ok {
			continue
		}

		exists := e.probe == nil || e.probe(addr)
		e.exposed[addr] = e.cache.append(regs.CsrName(addr), e.csrType, exists)
		added++
	}

	return added, nil
}

// Hide removes previously exposed entries matching the list. References that
// are unresolvable or not currently exposed are silently ignored; every other
// entry keeps its number and cached value.
func (e *Exposer) Hide(list []string) {
	for _, ref := range list {
		addr, err := e.resolve(ref)
		if err != nil {
			continue
		}

		number, ok := e.exposed[addr]
		if !ok {
			continue
		}

		e.cache.remove(number)
		delete(e.exposed, addr)
	}
}

// Exposed returns the cache numbers of the currently exposed CSRs, keyed by
// CSR address.
func (e *Exposer) Exposed() map[uint16]uint32 {
	exposed := make(map[uint16]uint32, len(e.exposed))

	for addr, number := range e.exposed {
		exposed[addr] = number
	}

	return exposed
}
