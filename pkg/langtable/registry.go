package langtable

import "sort"

// builtins holds the tables this package ships. Callers resolving a
// user-supplied language name go through Lookup.
var builtins = map[string]Table{
	"arithmetic": Arithmetic,
	"json":       JSON,
	"javascript": JavaScript,
}

// Lookup resolves a language name to its table.
func Lookup(name string) (Table, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Names returns the registered language names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
