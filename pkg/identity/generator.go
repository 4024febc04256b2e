// Package identity generates session-scoped identifiers for components
// dragged out of the palette.
//
// Identifiers combine a millisecond timestamp with a random base36 suffix:
//
//	component_1718031234567_k3j9x0a2q
//
// They are unique for practical purposes within a process but are not
// security tokens.
package identity

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPrefix is prepended to every generated identifier.
	DefaultPrefix = "component"

	suffixLen = 9
	// 36^9, the number of distinct suffixes.
	suffixSpace = 101559956668416
)

// Generator produces component identifiers. The zero value is not usable;
// construct one with New.
type Generator struct {
	prefix  string
	now     func() time.Time
	entropy io.Reader

	// fallback keeps identifiers distinct if the entropy source fails.
	fallback atomic.Uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(g *Generator) {
		g.prefix = prefix
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithEntropy injects the random source. A nil reader uses crypto/rand.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a fresh identifier.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s_%d_%s", g.prefix, g.now().UnixMilli(), g.suffix())
}

func (g *Generator) suffix() string {
	var (
		u   uuid.UUID
		err error
	)
	if g.entropy != nil {
		u, err = uuid.NewRandomFromReader(g.entropy)
	} else {
		u, err = uuid.NewRandom()
	}

	var v uint64
	if err != nil {
		v = g.fallback.Add(1)
	} else {
		v = binary.BigEndian.Uint64(u[:8])
	}

	s := strconv.FormatUint(v%suffixSpace, 36)
	if len(s) < suffixLen {
		s = strings.Repeat("0", suffixLen-len(s)) + s
	}
	return s
}
