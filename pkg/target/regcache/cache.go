// Package regcache implements the register cache of a debugged target.
//
// Each cache entry proceeds through the following stages:
//   - not allocated before Cache.Allocate
//   - not initialized before the call to Cache.InitEntry with its number
//   - initialized until Cache.FreeAll is called
//
// The cache is pure bookkeeping: it never touches hardware itself. Hardware
// access lives with the owning target, gated by the regs cacheability policy.
// A cache belongs to exactly one target and is driven from that target's
// single session thread, so no locking happens here.
package regcache

import (
	"errors"

	"github.com/Manu343726/escarabajo/pkg/target/regtypes"
	"github.com/Manu343726/escarabajo/pkg/utils"
)

var (
	ErrAlreadyAllocated   = errors.New("register cache already allocated")
	ErrInvalidNumber      = errors.New("register number out of range")
	ErrNotInitialized     = errors.New("register entry not initialized")
	ErrAlreadyInitialized = errors.New("register entry already initialized")
)

// Owner is the non-owning back-reference from a cache entry to the target the
// cache belongs to.
type Owner interface {
	Name() string
}

// Entry is one register of the target.
//
// For every initialized entry:
//   - value is non-nil iff the register exists on this target
//   - dirty implies valid
type Entry struct {
	number      uint32
	name        string
	typ         *regtypes.Descriptor
	exists      bool
	value       []byte
	valid       bool
	dirty       bool
	owner       Owner
	initialized bool
}

func (e *Entry) Number() uint32 { return e.number }
func (e *Entry) Name() string   { return e.name }
func (e *Entry) Exists() bool   { return e.exists }
func (e *Entry) Valid() bool    { return e.valid }
func (e *Entry) Dirty() bool    { return e.dirty }

// Type returns the entry's type descriptor
func (e *Entry) Type() *regtypes.Descriptor { return e.typ }

// Target returns the target that owns the cache entry. It is always set for
// an initialized entry.
func (e *Entry) Target() Owner { return e.owner }

// Value returns the cached value buffer. Nil iff the register does not exist
// on this target. The buffer is owned by the entry; callers must not keep it.
func (e *Entry) Value() []byte { return e.value }

// StoreRead records a value obtained from hardware. The value is trusted for
// future reads iff the cacheability policy said so.
func (e *Entry) StoreRead(buf []byte, trusted bool) {
	copy(e.value, buf)
	e.valid = trusted
	e.dirty = false
	e.checkConsistent()
}

// StoreWrite records a locally written value that has not reached hardware
// yet. The entry becomes dirty until MarkFlushed.
func (e *Entry) StoreWrite(buf []byte) {
	copy(e.value, buf)
	e.valid = true
	e.dirty = true
	e.checkConsistent()
}

// MarkFlushed records that the dirty value reached hardware. For WARL
// registers the written value may have been legalized, so it stays trusted
// only when the cacheability policy allows trusting writes.
func (e *Entry) MarkFlushed(trusted bool) {
	e.dirty = false
	e.valid = trusted
	e.checkConsistent()
}

// MarkDirty flags a valid entry for writeback, delaying it as long as
// possible. Used by callers about to clobber the underlying register.
func (e *Entry) MarkDirty() {
	e.dirty = true
	e.checkConsistent()
}

// Invalidate drops any trust in the cached value
func (e *Entry) Invalidate() {
	e.valid = false
	e.dirty = false
	e.checkConsistent()
}

// checkConsistent verifies the entry invariants. A violation is a bug in this
// package or its caller, never a hardware or user condition.
func (e *Entry) checkConsistent() {
	if !e.initialized {
		panic("consistency: mutating an uninitialized register entry")
	}
	if e.owner == nil {
		panic("consistency: initialized register entry without an owner")
	}
	if e.exists != (e.value != nil) {
		panic("consistency: register entry existence does not match its value buffer")
	}
	if e.dirty && !e.valid {
		panic("consistency: register entry dirty but not valid")
	}
}

// Cache is the ordered register set of one target, indexed by register number
type Cache struct {
	owner   Owner
	entries []Entry
}

// New returns a cache in the not-allocated state
func New(owner Owner) *Cache {
	return &Cache{owner: owner}
}

// Allocate creates count uninitialized entries. Allocating twice without an
// intervening FreeAll is caller misuse.
func (c *Cache) Allocate(count uint32) error {
	if c.entries != nil {
		return utils.MakeError(ErrAlreadyAllocated, "target %v", c.owner.Name())
	}

	c.entries = make([]Entry, count)
	return nil
}

// InitEntry transitions entry number from uninitialized to initialized,
// assigning its name, type descriptor and existence flag. A value buffer
// sized from the type is allocated iff the register exists.
// Re-initialization is not permitted; re-probing the target requires FreeAll
// followed by Allocate.
func (c *Cache) InitEntry(number uint32, name string, typ *regtypes.Descriptor, exists bool) error {
	if int(number) >= len(c.entries) {
		return utils.MakeError(ErrInvalidNumber, "%d, cache holds %d entries", number, len(c.entries))
	}

	entry := &c.entries[number]
	if entry.initialized {
		return utils.MakeError(ErrAlreadyInitialized, "register %d (%v)", number, entry.name)
	}

	*entry = Entry{
		number:      number,
		name:        name,
		typ:         typ,
		exists:      exists,
		owner:       c.owner,
		initialized: true,
	}
	if exists {
		entry.value = make([]byte, typ.TotalBytes())
	}

	entry.checkConsistent()
	return nil
}

// Entry returns the initialized entry with the given number
func (c *Cache) Entry(number uint32) (*Entry, error) {
	if int(number) >= len(c.entries) {
		return nil, utils.MakeError(ErrInvalidNumber, "%d, cache holds %d entries", number, len(c.entries))
	}

	entry := &c.entries[number]
	if !entry.initialized {
		return nil, utils.MakeError(ErrNotInitialized, "register %d", number)
	}

	return entry, nil
}

// Len returns the number of entry slots, initialized or not
func (c *Cache) Len() int {
	return len(c.entries)
}

// Initialized returns the initialized entries in number order
func (c *Cache) Initialized() []*Entry {
	entries := make([]*Entry, 0, len(c.entries))

	for i := range c.entries {
		if c.entries[i].initialized {
			entries = append(entries, &c.entries[i])
		}
	}

	return entries
}

// FreeAll releases every cached value buffer and returns the cache to the
// not-allocated state. Idempotent; a following Allocate yields a cache
// indistinguishable from a fresh one.
func (c *Cache) FreeAll() {
	c.entries = nil
}

// append initializes a new entry at the lowest free number: the first
// uninitialized slot if a previous removal left one, otherwise one past the
// current end. Existing entries never move.
func (c *Cache) append(name string, typ *regtypes.Descriptor, exists bool) uint32 {
	number := uint32(len(c.entries))

	for i := range c.entries {
		if !c.entries[i].initialized {
			number = uint32(i)
			break
		}
	}

	if int(number) == len(c.entries) {
		c.entries = append(c.entries, Entry{})
	}

	// InitEntry cannot fail here: the slot is in range and uninitialized
	if err := c.InitEntry(number, name, typ, exists); err != nil {
		panic(err)
	}

	return number
}

// remove returns an entry to the uninitialized state and trims trailing
// uninitialized slots, without renumbering anything else.
func (c *Cache) remove(number uint32) {
	if int(number) >= len(c.entries) {
		return
	}

	c.entries[number] = Entry{}

	end := len(c.entries)
	for end > 0 && !c.entries[end-1].initialized {
		end--
	}
	c.entries = c.entries[:end]
}
