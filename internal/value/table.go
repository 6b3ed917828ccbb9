package value

const (
	tableMinCapacity = 8
	tableMaxLoad     = 0.75
)

// Entry is one slot of a Table. A slot whose key is Empty is unused; a slot
// with a real key and an Empty value is a tombstone left by Delete.
type Entry struct {
	Key   Value
	Value Value
}

func (e *Entry) unused() bool    { return e.Key.Kind == KindEmpty }
func (e *Entry) tombstone() bool { return e.Key.Kind != KindEmpty && e.Value.Kind == KindEmpty }
func (e *Entry) live() bool      { return e.Key.Kind != KindEmpty && e.Value.Kind != KindEmpty }

// Table is an open-addressing hash table keyed by Value with linear probing
// over a power-of-two array.
type Table struct {
	count   int // live entries plus tombstones
	entries []Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	n := 0
	for i := range t.entries {
		if t.entries[i].live() {
			n++
		}
	}
	return n
}

// Cap returns the current slot capacity.
func (t *Table) Cap() int {
	return len(t.entries)
}

// Get looks up key, skipping tombstones.
func (t *Table) Get(key Value) (Value, bool) {
	if len(t.entries) == 0 {
		return Value{}, false
	}
	e := findEntry(t.entries, key)
	if !e.live() {
		return Value{}, false
	}
	return e.Value, true
}

// Set binds key to val and reports whether key was not live before.
// A key set to Empty is indistinguishable from a deleted one.
func (t *Table) Set(key, val Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.grow()
	}
	e := findEntry(t.entries, key)
	isNew := !e.live()
	if e.unused() {
		t.count++
	}
	e.Key = key
	e.Value = val
	return isNew
}

// Delete removes key, leaving a tombstone so probe chains through the slot
// stay intact. It reports whether key was live.
func (t *Table) Delete(key Value) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if !e.live() {
		return false
	}
	e.Value = Empty()
	return true
}

// FindString looks up an interned string by content. It is the only lookup
// that compares string bytes instead of object identity.
func (t *Table) FindString(chars string, hash uint32) *ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	for index := hash & mask; ; index = (index + 1) & mask {
		e := &t.entries[index]
		if e.unused() {
			return nil
		}
		if e.tombstone() {
			continue
		}
		if s := e.Key.AsString(); s != nil && s.Hash == hash && s.Chars == chars {
			return s
		}
	}
}

// AddAll copies every live entry of from into t.
func (t *Table) AddAll(from *Table) {
	for i := range from.entries {
		e := &from.entries[i]
		if e.live() {
			t.Set(e.Key, e.Value)
		}
	}
}

// Each calls fn for every live entry in slot order until fn returns false.
func (t *Table) Each(fn func(key, val Value) bool) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.live() && !fn(e.Key, e.Value) {
			return
		}
	}
}

func (t *Table) grow() {
	capacity := len(t.entries) * 2
	if capacity < tableMinCapacity {
		capacity = tableMinCapacity
	}
	entries := make([]Entry, capacity)
	for i := range entries {
		entries[i] = Entry{Key: Empty(), Value: Nil()}
	}

	t.count = 0
	for i := range t.entries {
		old := &t.entries[i]
		if !old.live() {
			continue
		}
		dst := findEntry(entries, old.Key)
		*dst = *old
		t.count++
	}
	t.entries = entries
}

// findEntry returns the slot holding key, or the slot where key should be
// inserted: the first tombstone passed, else the unused slot ending the
// probe. len(entries) must be a non-zero power of two with a free slot.
func findEntry(entries []Entry, key Value) *Entry {
	mask := uint32(len(entries) - 1)
	var tombstone *Entry
	for index := Hash(key) & mask; ; index = (index + 1) & mask {
		e := &entries[index]
		switch {
		case e.unused():
			if tombstone != nil {
				return tombstone
			}
			return e
		case Equal(e.Key, key):
			return e
		case e.tombstone() && tombstone == nil:
			tombstone = e
		}
	}
}
