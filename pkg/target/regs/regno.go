// Package regs defines the register numbering of the debugged RISC-V targets
// and the cacheability policy that governs when a cached register value may
// be trusted instead of going out to the hardware.
package regs

import "fmt"

// RegNo identifies one architectural register. The fixed set below doubles as
// the register's index in the target's register cache; CSRs exposed on user
// request are numbered from FixedCount upwards.
type RegNo uint32

const (
	RegNo_Zero RegNo = 0
	RegNo_X31  RegNo = 31
	RegNo_Pc   RegNo = 32
	RegNo_F0   RegNo = 33
	RegNo_F31  RegNo = 64
	RegNo_V0   RegNo = 65
	RegNo_V31  RegNo = 96
	RegNo_Tr0  RegNo = 97
	RegNo_Tr7  RegNo = 104
	RegNo_Acc0 RegNo = 105
	RegNo_Acc7 RegNo = 112
)

// Control-and-status registers of the fixed set
const (
	RegNo_Fflags RegNo = iota + RegNo_Acc7 + 1
	RegNo_Frm
	RegNo_Fcsr
	RegNo_Mstatus
	RegNo_Misa
	RegNo_Mepc
	RegNo_Mcause
	RegNo_Satp
	RegNo_Tselect
	RegNo_Tdata1
	RegNo_Tdata2
	RegNo_Dcsr
	RegNo_Dpc
	RegNo_Dscratch0
	RegNo_Vstart
	RegNo_Vxsat
	RegNo_Vxrm
	RegNo_Vl
	RegNo_Vtype
	RegNo_Vlenb
	RegNo_Mstart
	RegNo_Mcsr
	RegNo_Mtype
	RegNo_Mtilem
	RegNo_Mtilen
	RegNo_Mtilek
	RegNo_Mlenb
	RegNo_Mrlenb
	RegNo_Mamul

	// FixedCount is the size of the architecturally fixed register set.
	// Dynamically exposed CSRs are numbered from FixedCount on.
	FixedCount
)

// Identity space for CSRs addressed by architectural CSR address rather than
// by a fixed cache number. Transports see CsrRegNo(addr) for CSRs exposed at
// runtime.
const (
	RegNo_CsrBase RegNo = 0x1000
	RegNo_CsrLast RegNo = RegNo_CsrBase + 0xfff
)

// CsrRegNo returns the transport identity of the CSR with the given address
func CsrRegNo(addr uint16) RegNo {
	return RegNo_CsrBase + RegNo(addr)
}

// ABI names of the general purpose registers
var gprNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"fp", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

type csrInfo struct {
	name string
	addr uint16
}

// Fixed CSR entries with their architectural CSR addresses. The matrix shape
// and length registers live in the custom machine-mode ranges.
var fixedCsrs = map[RegNo]csrInfo{
	RegNo_Fflags:    {"fflags", 0x001},
	RegNo_Frm:       {"frm", 0x002},
	RegNo_Fcsr:      {"fcsr", 0x003},
	RegNo_Mstatus:   {"mstatus", 0x300},
	RegNo_Misa:      {"misa", 0x301},
	RegNo_Mepc:      {"mepc", 0x341},
	RegNo_Mcause:    {"mcause", 0x342},
	RegNo_Satp:      {"satp", 0x180},
	RegNo_Tselect:   {"tselect", 0x7a0},
	RegNo_Tdata1:    {"tdata1", 0x7a1},
	RegNo_Tdata2:    {"tdata2", 0x7a2},
	RegNo_Dcsr:      {"dcsr", 0x7b0},
	RegNo_Dpc:       {"dpc", 0x7b1},
	RegNo_Dscratch0: {"dscratch0", 0x7b2},
	RegNo_Vstart:    {"vstart", 0x008},
	RegNo_Vxsat:     {"vxsat", 0x009},
	RegNo_Vxrm:      {"vxrm", 0x00a},
	RegNo_Vl:        {"vl", 0xc20},
	RegNo_Vtype:     {"vtype", 0xc21},
	RegNo_Vlenb:     {"vlenb", 0xc22},
	RegNo_Mstart:    {"mstart", 0x7c0},
	RegNo_Mcsr:      {"mcsr", 0x7c1},
	RegNo_Mtype:     {"mtype", 0x7c2},
	RegNo_Mtilem:    {"mtilem", 0x7c3},
	RegNo_Mtilen:    {"mtilen", 0x7c4},
	RegNo_Mtilek:    {"mtilek", 0x7c5},
	RegNo_Mlenb:     {"mlenb", 0xfc0},
	RegNo_Mrlenb:    {"mrlenb", 0xfc1},
	RegNo_Mamul:     {"mamul", 0xfc2},
}

// Additional well known CSRs that can be exposed by name on user request
var exposableCsrs = map[string]uint16{
	"mvendorid": 0xf11,
	"marchid":   0xf12,
	"mimpid":    0xf13,
	"mhartid":   0xf14,
	"mtvec":     0x305,
	"mie":       0x304,
	"mip":       0x344,
	"mscratch":  0x340,
	"mtval":     0x343,
	"medeleg":   0x302,
	"mideleg":   0x303,
	"cycle":     0xc00,
	"time":      0xc01,
	"instret":   0xc02,
}

// Name returns the display name of a fixed register
func (n RegNo) Name() string {
	switch {
	case n <= RegNo_X31:
		return gprNames[n]
	case n == RegNo_Pc:
		return "pc"
	case n >= RegNo_F0 && n <= RegNo_F31:
		return fmt.Sprintf("f%d", n-RegNo_F0)
	case n >= RegNo_V0 && n <= RegNo_V31:
		return fmt.Sprintf("v%d", n-RegNo_V0)
	case n >= RegNo_Tr0 && n <= RegNo_Tr7:
		return fmt.Sprintf("tr%d", n-RegNo_Tr0)
	case n >= RegNo_Acc0 && n <= RegNo_Acc7:
		return fmt.Sprintf("acc%d", n-RegNo_Acc0)
	}

	if csr, ok := fixedCsrs[n]; ok {
		return csr.name
	}

	if n >= RegNo_CsrBase && n <= RegNo_CsrLast {
		return CsrName(uint16(n - RegNo_CsrBase))
	}

	return fmt.Sprintf("reg%d", n)
}

// CsrAddress resolves a CSR name to its architectural address. It knows the
// fixed CSR entries and the well known exposable ones.
func CsrAddress(name string) (uint16, bool) {
	for _, csr := range fixedCsrs {
		if csr.name == name {
			return csr.addr, true
		}
	}

	addr, ok := exposableCsrs[name]
	return addr, ok
}

// FixedCsrByAddress returns the fixed register holding the CSR with the given
// address, if the fixed set covers it.
func FixedCsrByAddress(addr uint16) (RegNo, bool) {
	for regno, csr := range fixedCsrs {
		if csr.addr == addr {
			return regno, true
		}
	}

	return 0, false
}

// CsrName names a CSR address, falling back to the numeric csrNNN form used
// for unnamed custom CSRs.
func CsrName(addr uint16) string {
	if regno, ok := FixedCsrByAddress(addr); ok {
		return fixedCsrs[regno].name
	}

	for name, a := range exposableCsrs {
		if a == addr {
			return name
		}
	}

	return fmt.Sprintf("csr%d", addr)
}
