package markup

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces engine tags, compilation ids and selector tokens.
// Ids must be unique for the lifetime of an engine and must not contain
// whitespace.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator returns random version 4 UUIDs as 32 lower-case hex digits,
// which are valid inside attribute names.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SequenceGenerator returns prefix1, prefix2, ... and makes compiled output
// deterministic for tests.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator starting at prefix1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.prefix + strconv.Itoa(g.n)
}
