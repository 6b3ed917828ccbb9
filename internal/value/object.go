package value

// ObjType identifies the concrete kind of a heap object.
type ObjType int

const (
	ObjTypeString ObjType = iota
)

func (t ObjType) String() string {
	switch t {
	case ObjTypeString:
		return "string"
	default:
		return "object"
	}
}

// Obj is a heap-allocated object. Every object is threaded onto the
// owning Heap's object list through its next link.
type Obj interface {
	Type() ObjType
	String() string
	next() Obj
	setNext(Obj)
}

type objHeader struct {
	link Obj
}

func (h *objHeader) next() Obj     { return h.link }
func (h *objHeader) setNext(o Obj) { h.link = o }

// ObjString is an immutable string with its FNV-1a hash precomputed.
// Within one Heap at most one ObjString exists per distinct content.
type ObjString struct {
	objHeader
	Chars string
	Hash  uint32
}

func (s *ObjString) Type() ObjType { return ObjTypeString }

func (s *ObjString) String() string { return s.Chars }

// Len returns the length of the string in bytes.
func (s *ObjString) Len() int { return len(s.Chars) }
