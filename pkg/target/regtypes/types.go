// Package regtypes describes the bit layout of target registers.
//
// Descriptors are built once per target connect, after the hardware has been
// probed for its vector and matrix lengths, and are immutable afterwards.
// They may be shared by reference across every register entry of the same
// shape, including across cores of the same hardware configuration.
package regtypes

type Kind uint

const (
	// A plain unsigned integer of a fixed bit width
	Kind_Scalar Kind = iota

	// A homogeneous sequence of elements of another type
	Kind_Vector

	// Overlapping named views over the same bits
	Kind_Union

	// Number of descriptor kinds
	TOTAL_KINDS
)

func (k Kind) String() string {
	switch k {
	case Kind_Scalar:
		return "scalar"
	case Kind_Vector:
		return "vector"
	case Kind_Union:
		return "union"
	}

	panic("unreachable")
}

// Field is one named view of a union
type Field struct {
	Name string
	Type *Descriptor
}

// Descriptor is a node of a register type graph. Exactly the fields relevant
// to Kind are set; the rest stay zero.
type Descriptor struct {
	Kind Kind

	// Identifier used in target descriptions, e.g. "uint32", "bytes", "riscv_vector"
	ID string

	// Scalar width in bits
	Bits uint

	// Vector element type and count
	Elem  *Descriptor
	Count uint

	// Union fields, ordered
	Fields []Field
}

// Predefined scalar element types shared by every vector build.
var (
	Uint8   = &Descriptor{Kind: Kind_Scalar, ID: "uint8", Bits: 8}
	Uint16  = &Descriptor{Kind: Kind_Scalar, ID: "uint16", Bits: 16}
	Uint32  = &Descriptor{Kind: Kind_Scalar, ID: "uint32", Bits: 32}
	Uint64  = &Descriptor{Kind: Kind_Scalar, ID: "uint64", Bits: 64}
	Uint128 = &Descriptor{Kind: Kind_Scalar, ID: "uint128", Bits: 128}
)

// Scalar returns a scalar descriptor of the given width
func Scalar(id string, bits uint) *Descriptor {
	return &Descriptor{Kind: Kind_Scalar, ID: id, Bits: bits}
}

// TotalBits returns the width of the described register in bits. For a union
// this is the width of its widest view.
func (d *Descriptor) TotalBits() uint {
	switch d.Kind {
	case Kind_Scalar:
		return d.Bits
	case Kind_Vector:
		return d.Elem.TotalBits() * d.Count
	case Kind_Union:
		max := uint(0)

		for _, field := range d.Fields {
			if bits := field.Type.TotalBits(); bits > max {
				max = bits
			}
		}

		return max
	}

	panic("unreachable")
}

// TotalBytes returns the width of the described register in bytes, rounded up
func (d *Descriptor) TotalBytes() uint {
	return (d.TotalBits() + 7) / 8
}
