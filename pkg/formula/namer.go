package formula

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Namer produces unique, increasing names of the form <prefix>-<n>.
type Namer struct {
	prefix string
	n      atomic.Int64
}

// NewNamer returns a namer with a random prefix.
func NewNamer() *Namer {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return NewNamerWithPrefix("formula-" + id[:12])
}

// NewNamerWithPrefix returns a namer with a fixed prefix.
func NewNamerWithPrefix(prefix string) *Namer {
	return &Namer{prefix: prefix}
}

// Prefix returns the namer's prefix.
func (n *Namer) Prefix() string { return n.prefix }

// Next returns the next name.
func (n *Namer) Next() string {
	return fmt.Sprintf("%s-%d", n.prefix, n.n.Add(1)-1)
}

// NextN returns count consecutive names.
func (n *Namer) NextN(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = n.Next()
	}
	return names
}
