package wasmbin

const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100
	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

const (
	SectionMemory byte = 5
	SectionExport byte = 7
)

const (
	ExportMemory byte = 0x02
	limitsHasMax byte = 0x01
)

// PageSize is the size of one linear memory page.
const PageSize = 65536

// MaxPages is the page limit of a 32-bit linear memory.
const MaxPages = 65536

// Limits bounds a linear memory in pages. A zero Max means unbounded.
type Limits struct {
	Min uint32
	Max uint32
}

// MemoryModule returns a module that defines a single linear memory and
// exports it under name. It has no functions, so instantiating it runs no
// guest code.
func MemoryModule(name string, limits Limits) []byte {
	w := NewWriter()
	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	mem := NewWriter()
	mem.WriteU32(1)
	if limits.Max != 0 {
		mem.Byte(limitsHasMax)
		mem.WriteU32(limits.Min)
		mem.WriteU32(limits.Max)
	} else {
		mem.Byte(0)
		mem.WriteU32(limits.Min)
	}
	w.Section(SectionMemory, mem.Bytes())

	exp := NewWriter()
	exp.WriteU32(1)
	exp.WriteName(name)
	exp.Byte(ExportMemory)
	exp.WriteU32(0)
	w.Section(SectionExport, exp.Bytes())

	return w.Bytes()
}

// PagesFor returns the number of pages needed to hold n bytes.
func PagesFor(n uint64) uint32 {
	return uint32((n + PageSize - 1) / PageSize)
}
