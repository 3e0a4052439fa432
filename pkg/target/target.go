// Package target implements the target-control layer of the debugger: one
// Target per debugged hart, owning its register cache and deciding, through
// the regs cacheability policy, when a register access has to go out over the
// debug transport.
//
// A Target is driven by a single session goroutine; nothing here locks.
package target

import (
	"log/slog"

	"github.com/Manu343726/escarabajo/pkg/target/regcache"
	"github.com/Manu343726/escarabajo/pkg/target/regs"
	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
	"github.com/Manu343726/escarabajo/pkg/target/transport"
)

// Target is one debugged RISC-V hart
type Target struct {
	name string
	info Info
	tr   transport.Transport
	log  *slog.Logger

	cache   *regcache.Cache
	exposer *regcache.Exposer

	// runtime-built register types, immutable after Connect
	csrType    *regtypes.Descriptor
	fprType    *regtypes.Descriptor
	vectorType *regtypes.Descriptor
	tileType   *regtypes.Descriptor
	accType    *regtypes.Descriptor

	// CSR address of each dynamically exposed cache number
	csrByNumber map[uint32]uint16

	// lazily built target description, dropped whenever the register set
	// changes
	description string

	// EnumerateTriggers, when set, runs before the first manual write to a
	// trigger register, so that leftover triggers from a previous session
	// are cleared before the user installs their own.
	EnumerateTriggers func() error

	manualTriggerSet bool
}

var _ regcache.Owner = (*Target)(nil)

// Name returns the target name, e.g. "riscv.cpu0"
func (t *Target) Name() string { return t.name }

// Info returns the probed hardware parameters
func (t *Target) Info() Info { return t.info }

// Connect builds the register cache of a freshly attached target: every fixed
// register is initialized with a type synthesized from the probed hardware
// lengths, then the profile's extra CSRs are exposed and hidden. No register
// value is read here; values are fetched lazily on first access.
func Connect(name string, info Info, tr transport.Transport, log *slog.Logger) (*Target, error) {
	info, err := info.normalize()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	t := &Target{
		name:        name,
		info:        info,
		tr:          tr,
		log:         log.With("target", name),
		csrByNumber: map[uint32]uint16{},
	}

	t.csrType = scalarOfWidth(info.XLen)
	t.fprType = scalarOfWidth(info.FLen)
	t.vectorType = regtypes.BuildVector(info.Vlenb)
	t.tileType = regtypes.BuildMatrix(info.Mlenb, info.Mrlenb, 1)
	t.accType = regtypes.BuildMatrix(info.Mlenb, info.Mrlenb, info.Mamul)

	t.cache = regcache.New(t)
	if err := t.cache.Allocate(uint32(regs.FixedCount)); err != nil {
		return nil, err
	}

	for regno := regs.RegNo(0); regno < regs.FixedCount; regno++ {
		typ, exists := t.fixedRegShape(regno)
		if err := t.cache.InitEntry(uint32(regno), regno.Name(), typ, exists); err != nil {
			return nil, err
		}
	}

	t.exposer = regcache.NewExposer(t.cache, t.csrType, t.probeCsr)

	if _, err := t.ExposeCsrs(info.ExposeCsrs); err != nil {
		return nil, err
	}
	t.HideCsrs(info.HideCsrs)

	t.log.Debug("register cache initialized", "registers", t.cache.Len())
	return t, nil
}

// Disconnect releases the register cache. The target must not be used
// afterwards.
func (t *Target) Disconnect() {
	t.cache.FreeAll()
	t.description = ""
}

// Registers returns the initialized cache entries in number order
func (t *Target) Registers() []*regcache.Entry {
	return t.cache.Initialized()
}

// ExposeCsrs adds cache entries for the requested extra CSRs and returns how
// many were added. Idempotent per CSR.
func (t *Target) ExposeCsrs(list []string) (int, error) {
	added, err := t.exposer.Expose(list)
	t.syncExposed()
	return added, err
}

// HideCsrs removes previously exposed CSR entries; all remaining entries keep
// their numbers.
func (t *Target) HideCsrs(list []string) {
	t.exposer.Hide(list)
	t.syncExposed()
}

func (t *Target) syncExposed() {
	t.csrByNumber = map[uint32]uint16{}
	for addr, number := range t.exposer.Exposed() {
		t.csrByNumber[number] = addr
	}

	// any description built from the previous register set is stale
	t.description = ""
}

// ident maps a cache number to the architectural identity the cacheability
// policy and the transport understand.
func (t *Target) ident(number uint32) regs.RegNo {
	if number < uint32(regs.FixedCount) {
		return regs.RegNo(number)
	}

	if addr, ok := t.csrByNumber[number]; ok {
		return regs.CsrRegNo(addr)
	}

	return regs.RegNo(number)
}

// probeCsr asks the hardware whether a CSR is implemented, by attempting to
// read it once.
func (t *Target) probeCsr(addr uint16) bool {
	_, err := t.tr.ReadRegister(uint32(regs.CsrRegNo(addr)), t.csrType.TotalBytes())
	return err == nil
}

// fixedRegShape returns the type descriptor and existence flag of one fixed
// register, derived from the probed hardware parameters.
func (t *Target) fixedRegShape(regno regs.RegNo) (*regtypes.Descriptor, bool) {
	hasFpu := t.info.FLen > 0
	hasVector := t.info.Vlenb > 0
	hasMatrix := t.info.Mrlenb > 0

	switch {
	case regno <= regs.RegNo_Pc:
		return t.csrType, true

	case regno >= regs.RegNo_F0 && regno <= regs.RegNo_F31:
		if !hasFpu {
			return t.csrType, false
		}
		return t.fprType, true

	case regno >= regs.RegNo_V0 && regno <= regs.RegNo_V31:
		return t.vectorType, hasVector

	case regno >= regs.RegNo_Tr0 && regno <= regs.RegNo_Tr7:
		if !hasMatrix {
			return t.csrType, false
		}
		return t.tileType, true

	case regno >= regs.RegNo_Acc0 && regno <= regs.RegNo_Acc7:
		if !hasMatrix {
			return t.csrType, false
		}
		return t.accType, true
	}

	// fixed CSR entries
	exists := true
	switch regno {
	case regs.RegNo_Fflags, regs.RegNo_Frm, regs.RegNo_Fcsr:
		exists = hasFpu
	case regs.RegNo_Vstart, regs.RegNo_Vxsat, regs.RegNo_Vxrm,
		regs.RegNo_Vl, regs.RegNo_Vtype, regs.RegNo_Vlenb:
		exists = hasVector
	case regs.RegNo_Mstart, regs.RegNo_Mcsr, regs.RegNo_Mtype,
		regs.RegNo_Mtilem, regs.RegNo_Mtilen, regs.RegNo_Mtilek,
		regs.RegNo_Mlenb, regs.RegNo_Mrlenb, regs.RegNo_Mamul:
		exists = hasMatrix
	}

	return t.csrType, exists
}

func scalarOfWidth(bits uint) *regtypes.Descriptor {
	switch bits {
	case 32:
		return regtypes.Uint32
	case 64:
		return regtypes.Uint64
	case 128:
		return regtypes.Uint128
	default:
		return regtypes.Uint32
	}
}
