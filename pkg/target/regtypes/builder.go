package regtypes

// One candidate element width of a vector or matrix register view. The field
// names follow the b/s/w/l/q convention used by target descriptions.
type elementWidth struct {
	field  string
	vecID  string
	scalar *Descriptor
}

var elementWidths = []elementWidth{
	{"b", "bytes", Uint8},
	{"s", "shorts", Uint16},
	{"w", "words", Uint32},
	{"l", "longs", Uint64},
	{"q", "quads", Uint128},
}

// BuildVector builds the type of a vector data register from the probed
// vector register byte length. The result is a union of one uintN vector per
// element width that fits in the register, ordered from narrowest to widest:
//
//	<vector id="bytes"  type="uint8"   count="vlenb"/>
//	<vector id="shorts" type="uint16"  count="vlenb/2"/>
//	<vector id="words"  type="uint32"  count="vlenb/4"/>
//	<vector id="longs"  type="uint64"  count="vlenb/8"/>
//	<vector id="quads"  type="uint128" count="vlenb/16"/>
//	<union id="riscv_vector"> b s w l q </union>
//
// A width wider than the whole register never appears. For vlenb below one
// byte-element only the "b" view remains, with at least one element.
func BuildVector(vlenb uint) *Descriptor {
	fields := make([]Field, 0, len(elementWidths))

	for _, width := range elementWidths {
		elemBytes := width.scalar.Bits / 8

		if elemBytes > vlenb && width.scalar != Uint8 {
			break
		}

		count := vlenb / elemBytes
		if count == 0 {
			count = 1
		}

		fields = append(fields, Field{
			Name: width.field,
			Type: &Descriptor{
				Kind:  Kind_Vector,
				ID:    width.vecID,
				Elem:  width.scalar,
				Count: count,
			},
		})
	}

	return &Descriptor{Kind: Kind_Union, ID: "riscv_vector", Fields: fields}
}

// BuildMatrix builds the type of a matrix tile or accumulator register from
// the probed tile byte length, row byte length and row multiplicity (1 for a
// plain tile, the hardware accumulator multiplier for an accumulator).
//
// Each element width that fits in one row yields a two-level vector: the
// inner vector is one row of mrlenb*mamul bytes, the outer vector stacks
// mlenb/mrlenb rows. The fitting widths are joined into a union the same way
// as BuildVector, keyed off the row length rather than the full tile length.
//
// Returns nil when mrlenb is zero: the matrix extension is absent and there
// is nothing to describe.
func BuildMatrix(mlenb, mrlenb, mamul uint) *Descriptor {
	if mrlenb == 0 {
		return nil
	}

	rows := mlenb / mrlenb
	fields := make([]Field, 0, len(elementWidths))

	for _, width := range elementWidths {
		elemBytes := width.scalar.Bits / 8

		if elemBytes > mrlenb {
			break
		}

		row := &Descriptor{
			Kind:  Kind_Vector,
			ID:    width.vecID,
			Elem:  width.scalar,
			Count: mrlenb * mamul / elemBytes,
		}

		fields = append(fields, Field{
			Name: width.field,
			Type: &Descriptor{
				Kind:  Kind_Vector,
				ID:    "vector" + width.scalar.ID[4:],
				Elem:  row,
				Count: rows,
			},
		})
	}

	return &Descriptor{Kind: Kind_Union, ID: "riscv_matrix", Fields: fields}
}
