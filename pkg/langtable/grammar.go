package langtable

// GProd is a single production in a Grammar declaration: LHS -> RHS.
//
// Node is the name given to the wrapper created when this production
// reduces; it is ignored when Hidden is true (see Production.Hidden).
type GProd struct {
	LHS    string
	RHS    []string
	Node   string
	Hidden bool
}

// Grammar is the source-level description fed to Build to produce a Table.
// Symbol names appearing only on production RHSs are terminals; names
// appearing as some production's LHS are non-terminals. This is the only
// place anything resembling "grammar compilation" happens in this module,
// and it runs once, at package init, over the three literal grammars declared
// in arithmetic.go, json.go and javascript.go — there is no public API to compile an
// arbitrary grammar from outside this package, consistent with spec.md's
// Non-goal of leaving grammar compilation out of the core.
type Grammar struct {
	Name        string
	Start       string
	Productions []GProd
	Ubiquitous  []string
	Anonymous   []string
	// SymbolNames optionally overrides the display name for a terminal
	// (e.g. the symbol "PLUS" displaying as "+").
	SymbolNames map[string]string
	DFA *DFA
}
