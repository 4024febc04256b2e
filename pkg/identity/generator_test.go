package identity_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/dropzone/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^component_\d+_[0-9a-z]{9}$`)

func TestGenerator_Format(t *testing.T) {
	fixed := time.UnixMilli(1718031234567)
	g := identity.New(identity.WithClock(func() time.Time { return fixed }))

	id := g.Next()
	assert.Regexp(t, idPattern, id)
	assert.True(t, strings.HasPrefix(id, "component_1718031234567_"), id)
}

func TestGenerator_Uniqueness(t *testing.T) {
	g := identity.New()
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := g.Next()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s after %d draws", id, i)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestGenerator_EntropyFailureFallsBack(t *testing.T) {
	fixed := time.UnixMilli(42)
	g := identity.New(
		identity.WithClock(func() time.Time { return fixed }),
		identity.WithEntropy(bytes.NewReader(nil)),
		identity.WithPrefix("node"),
	)

	a, b := g.Next(), g.Next()
	assert.NotEqual(t, a, b)
	assert.Equal(t, "node_42_000000001", a)
	assert.Equal(t, "node_42_000000002", b)
}
