package value

// Heap owns every object allocated while compiling and running a program,
// along with the string intern table.
type Heap struct {
	objects Obj
	count   int
	strings *Table
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{strings: NewTable()}
}

// CopyString returns the interned string for chars, allocating it on first
// use.
func (h *Heap) CopyString(chars string) *ObjString {
	hash := HashString(chars)
	if interned := h.strings.FindString(chars, hash); interned != nil {
		return interned
	}
	return h.allocateString(chars, hash)
}

// Concat joins a and b and interns the result.
func (h *Heap) Concat(a, b *ObjString) *ObjString {
	return h.CopyString(a.Chars + b.Chars)
}

func (h *Heap) allocateString(chars string, hash uint32) *ObjString {
	s := &ObjString{Chars: chars, Hash: hash}
	h.track(s)
	h.strings.Set(FromObj(s), Nil())
	return s
}

func (h *Heap) track(o Obj) {
	o.setNext(h.objects)
	h.objects = o
	h.count++
}

// Objects returns the number of live objects on the heap.
func (h *Heap) Objects() int {
	return h.count
}

// Strings exposes the intern table.
func (h *Heap) Strings() *Table {
	return h.strings
}

// Free releases every object and empties the intern table.
func (h *Heap) Free() {
	o := h.objects
	for o != nil {
		next := o.next()
		o.setNext(nil)
		o = next
	}
	h.objects = nil
	h.count = 0
	h.strings = NewTable()
}

// Clone returns a heap whose intern table holds the same strings as h.
// The strings stay on h's object list; the clone only owns what it
// allocates afterwards.
func (h *Heap) Clone() *Heap {
	c := NewHeap()
	c.strings.AddAll(h.strings)
	return c
}
