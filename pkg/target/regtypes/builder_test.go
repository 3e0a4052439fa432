package regtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVector_FullWidthRegister(t *testing.T) {
	// 16 byte vector registers can be viewed at every element width
	union := BuildVector(16)

	require.NotNil(t, union)
	assert.Equal(t, Kind_Union, union.Kind)
	assert.Equal(t, "riscv_vector", union.ID)

	expected := []struct {
		name  string
		elem  *Descriptor
		count uint
	}{
		{"b", Uint8, 16},
		{"s", Uint16, 8},
		{"w", Uint32, 4},
		{"l", Uint64, 2},
		{"q", Uint128, 1},
	}

	require.Len(t, union.Fields, len(expected))

	for i, want := range expected {
		field := union.Fields[i]
		assert.Equal(t, want.name, field.Name)
		assert.Equal(t, Kind_Vector, field.Type.Kind)
		assert.Same(t, want.elem, field.Type.Elem)
		assert.Equal(t, want.count, field.Type.Count)
	}

	// every view spans the whole register
	for _, field := range union.Fields {
		assert.Equal(t, uint(16), field.Type.TotalBytes())
	}
	assert.Equal(t, uint(16), union.TotalBytes())
}

func TestBuildVector_NarrowRegisterDropsWideViews(t *testing.T) {
	union := BuildVector(4)

	names := []string{}
	for _, field := range union.Fields {
		names = append(names, field.Name)
	}

	// no view wider than the register itself
	assert.Equal(t, []string{"b", "s", "w"}, names)
	assert.Equal(t, uint(4), union.TotalBytes())
}

func TestBuildVector_SingleByteRegister(t *testing.T) {
	union := BuildVector(1)

	require.Len(t, union.Fields, 1)
	assert.Equal(t, "b", union.Fields[0].Name)
	assert.Same(t, Uint8, union.Fields[0].Type.Elem)
	assert.Equal(t, uint(1), union.Fields[0].Type.Count)
}

func TestBuildVector_ZeroLengthStillDescribesOneByte(t *testing.T) {
	union := BuildVector(0)

	require.Len(t, union.Fields, 1)
	assert.Equal(t, uint(1), union.Fields[0].Type.Count)
}

func TestBuildMatrix_NoMatrixExtension(t *testing.T) {
	assert.Nil(t, BuildMatrix(64, 0, 1))
}

func TestBuildMatrix_TileRegister(t *testing.T) {
	// 64 byte tiles of 8 byte rows: 8 rows, widths up to uint64 fit a row
	union := BuildMatrix(64, 8, 1)

	require.NotNil(t, union)
	assert.Equal(t, "riscv_matrix", union.ID)

	expected := []struct {
		name      string
		elem      *Descriptor
		rowCount  uint
		rowsCount uint
	}{
		{"b", Uint8, 8, 8},
		{"s", Uint16, 4, 8},
		{"w", Uint32, 2, 8},
		{"l", Uint64, 1, 8},
	}

	require.Len(t, union.Fields, len(expected))

	for i, want := range expected {
		outer := union.Fields[i].Type
		require.Equal(t, Kind_Vector, outer.Kind)
		assert.Equal(t, want.rowsCount, outer.Count)

		row := outer.Elem
		require.Equal(t, Kind_Vector, row.Kind)
		assert.Same(t, want.elem, row.Elem)
		assert.Equal(t, want.rowCount, row.Count)

		assert.Equal(t, want.name, union.Fields[i].Name)
	}

	assert.Equal(t, uint(64), union.TotalBytes())
}

func TestBuildMatrix_AccumulatorMultiplier(t *testing.T) {
	tile := BuildMatrix(64, 8, 1)
	acc := BuildMatrix(64, 8, 2)

	// the accumulator rows are mamul times longer, the row count is the same
	for i := range tile.Fields {
		assert.Equal(t, tile.Fields[i].Type.Count, acc.Fields[i].Type.Count)
		assert.Equal(t, 2*tile.Fields[i].Type.Elem.Count, acc.Fields[i].Type.Elem.Count)
	}

	assert.Equal(t, uint(128), acc.TotalBytes())
}

func TestBuildMatrix_WidthsKeyedOffRowLength(t *testing.T) {
	// a 16 byte tile of 2 byte rows never offers a 4 byte view, even though
	// the whole tile would fit one
	union := BuildMatrix(16, 2, 1)

	names := []string{}
	for _, field := range union.Fields {
		names = append(names, field.Name)
	}

	assert.Equal(t, []string{"b", "s"}, names)
}

func TestTotalBits(t *testing.T) {
	assert.Equal(t, uint(32), Uint32.TotalBits())
	assert.Equal(t, uint(8), Scalar("uint8", 8).TotalBits())

	vec := &Descriptor{Kind: Kind_Vector, ID: "words", Elem: Uint32, Count: 4}
	assert.Equal(t, uint(128), vec.TotalBits())
	assert.Equal(t, uint(16), vec.TotalBytes())
}
