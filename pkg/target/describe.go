package target

import (
	"fmt"
	"strings"

	"github.com/Manu343726/escarabajo/pkg/target/regcache"
	"github.com/Manu343726/escarabajo/pkg/target/regs"
	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
)

// Description assembles the target-description document a remote debug
// client uses to learn the register map. It is rebuilt lazily after every
// change to the register set (connect, expose, hide); register numbers in
// the document are the cache numbers and survive expose/hide cycles.
func (t *Target) Description() string {
	if t.description != "" {
		return t.description
	}

	b := &strings.Builder{}
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteString("<!DOCTYPE target SYSTEM \"gdb-target.dtd\">\n")
	b.WriteString("<target version=\"1.0\">\n")
	fmt.Fprintf(b, "  <architecture>riscv:rv%d</architecture>\n", t.info.XLen)

	entries := t.cache.Initialized()

	t.describeFeature(b, "org.gnu.gdb.riscv.cpu", entries, func(n regs.RegNo) bool {
		return n <= regs.RegNo_Pc
	})
	t.describeFeature(b, "org.gnu.gdb.riscv.fpu", entries, func(n regs.RegNo) bool {
		return n >= regs.RegNo_F0 && n <= regs.RegNo_F31
	})
	t.describeFeature(b, "org.gnu.gdb.riscv.vector", entries, func(n regs.RegNo) bool {
		return n >= regs.RegNo_V0 && n <= regs.RegNo_V31
	})
	t.describeFeature(b, "org.gnu.gdb.riscv.tile", entries, func(n regs.RegNo) bool {
		return n >= regs.RegNo_Tr0 && n <= regs.RegNo_Tr7
	})
	t.describeFeature(b, "org.gnu.gdb.riscv.acc", entries, func(n regs.RegNo) bool {
		return n >= regs.RegNo_Acc0 && n <= regs.RegNo_Acc7
	})
	t.describeFeature(b, "org.gnu.gdb.riscv.csr", entries, func(n regs.RegNo) bool {
		return n >= regs.RegNo_Fflags
	})

	b.WriteString("</target>\n")

	t.description = b.String()
	return t.description
}

// describeFeature emits one feature element holding the existing registers
// selected by the predicate, preceded by whatever composite types they use.
// Type identifiers are scoped to their feature, so the vector and matrix
// unions can both call their byte view "bytes".
func (t *Target) describeFeature(b *strings.Builder, name string, entries []*regcache.Entry, member func(regs.RegNo) bool) {
	var selected []*regcache.Entry

	for _, entry := range entries {
		if entry.Exists() && member(t.ident(entry.Number())) {
			selected = append(selected, entry)
		}
	}

	if len(selected) == 0 {
		return
	}

	fmt.Fprintf(b, "  <feature name=\"%s\">\n", name)

	emitted := map[string]bool{}
	for _, entry := range selected {
		describeType(b, entry.Type(), emitted)
	}

	for _, entry := range selected {
		fmt.Fprintf(b, "    <reg name=\"%s\" bitsize=\"%d\" regnum=\"%d\"",
			entry.Name(), entry.Type().TotalBits(), entry.Number())

		if entry.Type().Kind != regtypes.Kind_Scalar {
			fmt.Fprintf(b, " type=\"%s\"", entry.Type().ID)
		}

		b.WriteString("/>\n")
	}

	b.WriteString("  </feature>\n")
}

// describeType emits the vector and union elements a composite type is made
// of, innermost first, each identifier once per feature.
func describeType(b *strings.Builder, d *regtypes.Descriptor, emitted map[string]bool) {
	if d.Kind == regtypes.Kind_Scalar || emitted[d.ID] {
		return
	}
	emitted[d.ID] = true

	switch d.Kind {
	case regtypes.Kind_Vector:
		describeType(b, d.Elem, emitted)
		fmt.Fprintf(b, "    <vector id=\"%s\" type=\"%s\" count=\"%d\"/>\n",
			d.ID, d.Elem.ID, d.Count)

	case regtypes.Kind_Union:
		for _, field := range d.Fields {
			describeType(b, field.Type, emitted)
		}

		fmt.Fprintf(b, "    <union id=\"%s\">\n", d.ID)
		for _, field := range d.Fields {
			fmt.Fprintf(b, "      <field name=\"%s\" type=\"%s\"/>\n", field.Name, field.Type.ID)
		}
		b.WriteString("    </union>\n")
	}
}
