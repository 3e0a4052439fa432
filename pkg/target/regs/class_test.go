package regs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCacheable_ZeroRegister(t *testing.T) {
	// reads of x0 are stable, writes are dropped by hardware
	assert.True(t, IsCacheable(RegNo_Zero, false))
	assert.False(t, IsCacheable(RegNo_Zero, true))
}

func TestIsCacheable_PlainDataRegisters(t *testing.T) {
	plain := []RegNo{
		RegNo(5),           // x5
		RegNo_X31,          // x31
		RegNo_F0, RegNo_F31,
		RegNo_V0 + 7,
		RegNo_Tr0, RegNo_Tr7,
		RegNo_Acc0 + 3,
	}

	for _, regno := range plain {
		assert.True(t, IsCacheable(regno, false), "%v read", regno.Name())
		assert.True(t, IsCacheable(regno, true), "%v write", regno.Name())
	}
}

func TestIsCacheable_WarlCsrs(t *testing.T) {
	// WARL fields may legalize a written value, so only reads are trusted
	warl := []RegNo{
		RegNo_Mstatus, RegNo_Misa, RegNo_Mepc, RegNo_Mcause, RegNo_Satp,
		RegNo_Dpc, RegNo_Dcsr, RegNo_Dscratch0,
		RegNo_Vstart, RegNo_Vxsat, RegNo_Vxrm, RegNo_Vl, RegNo_Vtype, RegNo_Vlenb,
		RegNo_Mstart, RegNo_Mcsr, RegNo_Mtype,
		RegNo_Mtilem, RegNo_Mtilen, RegNo_Mtilek,
		RegNo_Mlenb, RegNo_Mrlenb, RegNo_Mamul,
		RegNo_Pc,
	}

	for _, regno := range warl {
		assert.True(t, IsCacheable(regno, false), "%v read", regno.Name())
		assert.False(t, IsCacheable(regno, true), "%v write", regno.Name())
	}
}

func TestIsCacheable_TriggerRegisters(t *testing.T) {
	// trigger registers alias the currently selected trigger slot, which the
	// cache cannot track
	for _, regno := range []RegNo{RegNo_Tselect, RegNo_Tdata1, RegNo_Tdata2} {
		assert.False(t, IsCacheable(regno, false), "%v read", regno.Name())
		assert.False(t, IsCacheable(regno, true), "%v write", regno.Name())
		assert.Equal(t, RegisterClass_VolatileCsr, ClassOf(regno))
	}
}

func TestIsCacheable_UnclassifiedNeverCacheable(t *testing.T) {
	unclassified := []RegNo{
		RegNo_Fflags, RegNo_Frm, RegNo_Fcsr,
		CsrRegNo(0x7c8), // arbitrary custom CSR
	}

	for _, regno := range unclassified {
		assert.Equal(t, RegisterClass_Untrackable, ClassOf(regno))
		assert.False(t, IsCacheable(regno, false))
		assert.False(t, IsCacheable(regno, true))
	}
}

func TestClassOf_CsrAddressAliasesFixedClassification(t *testing.T) {
	// mstatus addressed by CSR number classifies like the fixed mstatus entry
	assert.Equal(t, RegisterClass_StableCsr, ClassOf(CsrRegNo(0x300)))
	assert.Equal(t, RegisterClass_VolatileCsr, ClassOf(CsrRegNo(0x7a1)))
}

func TestName(t *testing.T) {
	assert.Equal(t, "zero", RegNo_Zero.Name())
	assert.Equal(t, "t0", RegNo(5).Name())
	assert.Equal(t, "pc", RegNo_Pc.Name())
	assert.Equal(t, "f7", (RegNo_F0 + 7).Name())
	assert.Equal(t, "v31", RegNo_V31.Name())
	assert.Equal(t, "tr0", RegNo_Tr0.Name())
	assert.Equal(t, "acc5", (RegNo_Acc0 + 5).Name())
	assert.Equal(t, "mstatus", RegNo_Mstatus.Name())
	assert.Equal(t, "mscratch", CsrRegNo(0x340).Name())
	assert.Equal(t, "csr1992", CsrRegNo(0x7c8).Name())
}

func TestCsrAddress(t *testing.T) {
	addr, ok := CsrAddress("mstatus")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x300), addr)

	addr, ok = CsrAddress("mscratch")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x340), addr)

	_, ok = CsrAddress("notacsr")
	assert.False(t, ok)
}

func TestRegisterClass_String(t *testing.T) {
	// every class renders; a new class without a name would panic here
	for class := RegisterClass(0); class < TOTAL_REGISTER_CLASSES; class++ {
		assert.NotEmpty(t, class.String())
	}
}
