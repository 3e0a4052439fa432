package regs

// RegisterClass partitions the register set by how far the debugger may trust
// a cached value. The mapping below is the single source of truth consulted
// before any valid/dirty flag is used to skip a hardware access; keep it a
// table, auditable against the debug spec, not scattered conditionals.
type RegisterClass uint

const (
	// The hard-wired zero register: reads are stable, writes are dropped
	RegisterClass_Zero RegisterClass = iota

	// Plain data stores with read-after-write and write-after-write
	// coherence: GPRs, FPRs, vector and matrix tile/accumulator registers
	RegisterClass_PlainData

	// CSRs that hold their value until the debugger itself changes it, but
	// whose WARL fields may legalize a written value on readback
	RegisterClass_StableCsr

	// CSRs aliased onto hidden hardware state (the selected trigger slot);
	// neither direction can be trusted
	RegisterClass_VolatileCsr

	// Anything else, including arbitrary user-exposed CSRs
	RegisterClass_Untrackable

	// Number of register classes
	TOTAL_REGISTER_CLASSES
)

func (rc RegisterClass) String() string {
	switch rc {
	case RegisterClass_Zero:
		return "zero"
	case RegisterClass_PlainData:
		return "plain data"
	case RegisterClass_StableCsr:
		return "stable CSR"
	case RegisterClass_VolatileCsr:
		return "volatile CSR"
	case RegisterClass_Untrackable:
		return "untrackable"
	}

	panic("unreachable")
}

// Per-CSR classification of the fixed CSR entries. CSRs absent from this
// table are untrackable: most CSRs will not change value on us, but we cannot
// assume that about arbitrary ones.
var csrClasses = map[RegNo]RegisterClass{
	RegNo_Dpc:       RegisterClass_StableCsr,
	RegNo_Dcsr:      RegisterClass_StableCsr,
	RegNo_Dscratch0: RegisterClass_StableCsr,
	RegNo_Mstatus:   RegisterClass_StableCsr,
	RegNo_Misa:      RegisterClass_StableCsr,
	RegNo_Mepc:      RegisterClass_StableCsr,
	RegNo_Mcause:    RegisterClass_StableCsr,
	RegNo_Satp:      RegisterClass_StableCsr,
	RegNo_Vstart:    RegisterClass_StableCsr,
	RegNo_Vxsat:     RegisterClass_StableCsr,
	RegNo_Vxrm:      RegisterClass_StableCsr,
	RegNo_Vl:        RegisterClass_StableCsr,
	RegNo_Vtype:     RegisterClass_StableCsr,
	RegNo_Vlenb:     RegisterClass_StableCsr,
	RegNo_Mstart:    RegisterClass_StableCsr,
	RegNo_Mcsr:      RegisterClass_StableCsr,
	RegNo_Mtype:     RegisterClass_StableCsr,
	RegNo_Mtilem:    RegisterClass_StableCsr,
	RegNo_Mtilen:    RegisterClass_StableCsr,
	RegNo_Mtilek:    RegisterClass_StableCsr,
	RegNo_Mlenb:     RegisterClass_StableCsr,
	RegNo_Mrlenb:    RegisterClass_StableCsr,
	RegNo_Mamul:     RegisterClass_StableCsr,

	// Trigger registers change value when tselect is changed. Conservative:
	// trusting reads here breaks trigger handling in practice.
	RegNo_Tselect: RegisterClass_VolatileCsr,
	RegNo_Tdata1:  RegisterClass_VolatileCsr,
	RegNo_Tdata2:  RegisterClass_VolatileCsr,
}

// ClassOf maps a register to its cacheability class
func ClassOf(n RegNo) RegisterClass {
	switch {
	case n == RegNo_Zero:
		return RegisterClass_Zero
	case n <= RegNo_X31:
		return RegisterClass_PlainData
	case n == RegNo_Pc:
		// pc aliases dpc while the hart is halted
		return RegisterClass_StableCsr
	case n >= RegNo_F0 && n <= RegNo_Acc7:
		return RegisterClass_PlainData
	case n >= RegNo_CsrBase && n <= RegNo_CsrLast:
		// A CSR addressed by number classifies like its fixed alias, if any
		if fixed, ok := FixedCsrByAddress(uint16(n - RegNo_CsrBase)); ok {
			return ClassOf(fixed)
		}
		return RegisterClass_Untrackable
	}

	if class, ok := csrClasses[n]; ok {
		return class
	}

	return RegisterClass_Untrackable
}

// IsCacheable reports whether a cached value can be trusted.
//
// If isWrite is true: whether the register is guaranteed to contain exactly
// the value just written when it is next read. If isWrite is false: whether
// the register is guaranteed to read the same value in the future as the
// value just read.
func IsCacheable(n RegNo, isWrite bool) bool {
	switch ClassOf(n) {
	case RegisterClass_Zero:
		return !isWrite
	case RegisterClass_PlainData:
		return true
	case RegisterClass_StableCsr:
		// WARL fields might not hold the value we just wrote, but they
		// will not spontaneously change either
		return !isWrite
	case RegisterClass_VolatileCsr, RegisterClass_Untrackable:
		return false
	}

	panic("unreachable")
}
