package keccak

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Keccak is the sha256 keccak hash
type Keccak struct {
	buf  []byte
	hash hash.Hash
}

// Write implements the hash interface
func (k *Keccak) Write(b []byte) (int, error) {
	return k.hash.Write(b)
}

// Reset implements the hash interface
func (k *Keccak) Reset() {
	k.buf = k.buf[:0]
	k.hash.Reset()
}

// Read hashes the content and returns the intermediate buffer.
func (k *Keccak) Read() []byte {
	k.buf = k.hash.Sum(k.buf)

	return k.buf
}

// Sum implements the hash interface
func (k *Keccak) Sum(dst []byte) []byte {
	return k.hash.Sum(dst)
}

// NewKeccak256 returns a new keccak 256
func NewKeccak256() *Keccak {
	return &Keccak{
		hash: sha3.NewLegacyKeccak256(),
	}
}

// Pool is a pool of keccaks
type Pool struct {
	pool sync.Pool
}

// Get returns a keccak from the pool
func (p *Pool) Get() *Keccak {
	v := p.pool.Get()
	if v == nil {
		return NewKeccak256()
	}

	//nolint:forcetypeassert
	return v.(*Keccak)
}

// Put releases a keccak back into the pool
func (p *Pool) Put(k *Keccak) {
	k.Reset()
	p.pool.Put(k)
}

// DefaultKeccakPool is a default pool
var DefaultKeccakPool Pool

// Keccak256 hashes the concatenation of src into a fresh 32 byte slice
func Keccak256(src ...[]byte) []byte {
	h := DefaultKeccakPool.Get()
	defer DefaultKeccakPool.Put(h)

	for _, b := range src {
		_, _ = h.Write(b)
	}

	return h.Sum(nil)
}
