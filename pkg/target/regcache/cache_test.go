package regcache

import (
	"testing"

	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTarget stands in for the owning target
type fakeTarget struct {
	name string
}

func (t *fakeTarget) Name() string { return t.name }

func newTestCache(t *testing.T, count uint32) (*Cache, *fakeTarget) {
	owner := &fakeTarget{name: "riscv.cpu0"}
	cache := New(owner)
	require.NoError(t, cache.Allocate(count))
	return cache, owner
}

func TestAllocate_TwiceFails(t *testing.T) {
	cache, _ := newTestCache(t, 4)

	err := cache.Allocate(4)
	assert.ErrorIs(t, err, ErrAlreadyAllocated)
}

func TestAllocate_AfterFreeAllSucceeds(t *testing.T) {
	cache, _ := newTestCache(t, 4)
	require.NoError(t, cache.InitEntry(0, "zero", regtypes.Uint32, true))

	cache.FreeAll()
	cache.FreeAll() // idempotent

	require.NoError(t, cache.Allocate(4))

	// observably equivalent to a fresh cache: nothing is initialized
	for number := uint32(0); number < 4; number++ {
		_, err := cache.Entry(number)
		assert.ErrorIs(t, err, ErrNotInitialized, "entry %d", number)
	}
}

func TestEntry_BeforeInitFails(t *testing.T) {
	cache, _ := newTestCache(t, 4)

	_, err := cache.Entry(2)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = cache.Entry(4)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestInitEntry(t *testing.T) {
	cache, owner := newTestCache(t, 4)

	require.NoError(t, cache.InitEntry(1, "ra", regtypes.Uint64, true))

	entry, err := cache.Entry(1)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), entry.Number())
	assert.Equal(t, "ra", entry.Name())
	assert.Same(t, regtypes.Uint64, entry.Type())
	assert.True(t, entry.Exists())
	assert.Len(t, entry.Value(), 8)
	assert.False(t, entry.Valid())
	assert.False(t, entry.Dirty())
	assert.Same(t, owner, entry.Target())
}

func TestInitEntry_NonexistentRegisterHasNoBuffer(t *testing.T) {
	cache, _ := newTestCache(t, 4)

	require.NoError(t, cache.InitEntry(3, "f0", regtypes.Uint64, false))

	entry, err := cache.Entry(3)
	require.NoError(t, err)

	assert.False(t, entry.Exists())
	assert.Nil(t, entry.Value())
}

func TestInitEntry_OutOfRange(t *testing.T) {
	cache, _ := newTestCache(t, 4)

	err := cache.InitEntry(4, "pc", regtypes.Uint32, true)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestInitEntry_TwiceFails(t *testing.T) {
	cache, _ := newTestCache(t, 4)
	require.NoError(t, cache.InitEntry(0, "zero", regtypes.Uint32, true))

	err := cache.InitEntry(0, "zero", regtypes.Uint32, true)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

// invariantsHold checks the documented entry invariants at an observation point
func invariantsHold(t *testing.T, entry *Entry) {
	t.Helper()

	assert.Equal(t, entry.Exists(), entry.Value() != nil, "existence must match the value buffer")
	if entry.Dirty() {
		assert.True(t, entry.Valid(), "a value cannot be dirty without being valid")
	}
}

func TestEntry_ValueLifecycle(t *testing.T) {
	cache, _ := newTestCache(t, 4)
	require.NoError(t, cache.InitEntry(2, "sp", regtypes.Uint32, true))

	entry, err := cache.Entry(2)
	require.NoError(t, err)
	invariantsHold(t, entry)

	// a trusted read becomes valid
	entry.StoreRead([]byte{1, 2, 3, 4}, true)
	assert.True(t, entry.Valid())
	assert.False(t, entry.Dirty())
	assert.Equal(t, []byte{1, 2, 3, 4}, entry.Value())
	invariantsHold(t, entry)

	// an untrusted read is stored but not trusted
	entry.StoreRead([]byte{5, 6, 7, 8}, false)
	assert.False(t, entry.Valid())
	invariantsHold(t, entry)

	// a local write is dirty until flushed
	entry.StoreWrite([]byte{9, 9, 9, 9})
	assert.True(t, entry.Dirty())
	assert.True(t, entry.Valid())
	invariantsHold(t, entry)

	// flushing a WARL register leaves the value untrusted
	entry.MarkFlushed(false)
	assert.False(t, entry.Dirty())
	assert.False(t, entry.Valid())
	invariantsHold(t, entry)

	entry.StoreRead([]byte{1, 0, 0, 0}, true)
	entry.MarkDirty()
	assert.True(t, entry.Dirty())
	invariantsHold(t, entry)

	entry.Invalidate()
	assert.False(t, entry.Valid())
	assert.False(t, entry.Dirty())
	invariantsHold(t, entry)
}

func TestCache_Initialized(t *testing.T) {
	cache, _ := newTestCache(t, 4)
	require.NoError(t, cache.InitEntry(0, "zero", regtypes.Uint32, true))
	require.NoError(t, cache.InitEntry(2, "sp", regtypes.Uint32, true))

	entries := cache.Initialized()
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Number())
	assert.Equal(t, uint32(2), entries[1].Number())
}
