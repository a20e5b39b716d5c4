package typeid

import (
	"encoding/binary"
	"fmt"
	"hash"
)

var _ hash.Hash64 = (*Hasher)(nil)

// Hasher is a hash.Hash64 for a single Id. Ids are already well distributed,
// so the hash is the Id itself.
//
// Hasher must only ever see one WriteUint64 per session. Feeding it bytes
// panics instead of producing a degraded hash.
type Hasher struct {
	value   uint64
	written bool
}

// Hash returns the hash of id.
func Hash(id Id) uint64 {
	var h Hasher
	h.WriteUint64(uint64(id))
	return h.Sum64()
}

func (h *Hasher) WriteUint64(v uint64) {
	if h.written {
		panic("typeid: Hasher can only hash a single uint64 per session")
	}

	h.value = v
	h.written = true
}

// Write is unsupported and always panics.
func (h *Hasher) Write(p []byte) (int, error) {
	panic(fmt.Sprintf("typeid: Hasher can only handle uint64s, not %v", p))
}

func (h *Hasher) Sum64() uint64 {
	return h.value
}

func (h *Hasher) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, h.value)
}

func (h *Hasher) Reset() {
	h.value = 0
	h.written = false
}

func (h *Hasher) Size() int {
	return 8
}

func (h *Hasher) BlockSize() int {
	return 8
}
