package idgen

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Strategy names accepted by New
const (
	StrategySequence = "sequence"
	StrategyUUID     = "uuid"
	StrategyHashed   = "hashed"
)

// ErrUnknownStrategy is returned by New for an unrecognized strategy name
var ErrUnknownStrategy = errors.New("unknown id strategy")

// Generator proposes candidate node ids
type Generator interface {
	Next() string
}

// New returns the generator for strategy. start is the number of ids already
// issued (the seed node count); salt only affects the hashed strategy.
func New(strategy string, start uint64, salt string) (Generator, error) {
	switch strategy {
	case "", StrategySequence:
		return NewSequence(start), nil
	case StrategyUUID:
		return UUID{}, nil
	case StrategyHashed:
		return NewHashed(salt, start), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Sequence yields increasing decimal ids starting after start
type Sequence struct {
	n atomic.Uint64
}

// NewSequence creates a sequence whose first id is start+1
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

// Next returns the next decimal id
func (s *Sequence) Next() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}

// UUID yields random version 4 UUIDs
type UUID struct{}

// Next returns a new UUID string
func (UUID) Next() string {
	return uuid.NewString()
}

// hashedIDLen is the number of hex characters kept from each digest
const hashedIDLen = 12

// Hashed yields short hex ids derived from blake2b(salt || counter).
// The same salt and start always produce the same sequence of ids.
type Hashed struct {
	salt string
	n    atomic.Uint64
}

// NewHashed creates a hashed generator
func NewHashed(salt string, start uint64) *Hashed {
	h := &Hashed{salt: salt}
	h.n.Store(start)
	return h
}

// Next returns the next digest id
func (h *Hashed) Next() string {
	n := h.n.Add(1)
	sum := blake2b.Sum256([]byte(h.salt + ":" + strconv.FormatUint(n, 10)))
	return hex.EncodeToString(sum[:])[:hashedIDLen]
}
