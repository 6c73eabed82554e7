package dialect

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
	aliases    = make(map[string]string)
)

// ErrUnknownDialect is returned by Lookup for names that were never registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Register adds a dialect (and its aliases) to the registry, replacing any
// previous registration under the same name.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()

	dialects[d.Name] = d
	for _, alias := range d.Aliases {
		aliases[strings.ToLower(alias)] = d.Name
	}
}

// Get returns a dialect by name or alias. Lookups are case-insensitive.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	d, ok := dialects[name]
	return d, ok
}

// Lookup is Get with an error for unknown names.
func Lookup(name string) (*Dialect, error) {
	d, ok := Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDialect, "%q (known: %s)", name, strings.Join(List(), ", "))
	}

	return d, nil
}

// List returns all registered dialect names, sorted. Aliases are not included.
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()

	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
