package langtable

// JavaScript is a deliberately tiny expression-statement subset used by the
// test suite to exercise ubiquitous newlines: identifiers, zero-argument
// calls, property access, and a terminating semicolon. Whitespace (including
// newlines) and "//" line comments are ubiquitous, which is what lets
//
//	fn()
//	  .otherFn();
//
// parse as a single property-access chain across the line break.
//
//	statement       -> expr ';'
//	expr            -> function_call | property_access | IDENTIFIER
//	function_call   -> expr '(' ')'
//	property_access -> expr '.' IDENTIFIER
var JavaScript Table = buildJavaScriptTable()

func buildJavaScriptTable() Table {
	g := Grammar{
		Name:  "javascript",
		Start: "statement",
		Productions: []GProd{
			{LHS: "statement", RHS: []string{"expr", "SEMI"}, Node: "expression_statement"},
			{LHS: "expr", RHS: []string{"function_call"}, Hidden: true},
			{LHS: "expr", RHS: []string{"property_access"}, Hidden: true},
			{LHS: "expr", RHS: []string{"IDENTIFIER"}, Hidden: true},
			{LHS: "function_call", RHS: []string{"expr", "LPAREN", "RPAREN"}, Node: "function_call"},
			{LHS: "property_access", RHS: []string{"expr", "DOT", "IDENTIFIER"}, Node: "property_access"},
		},
		Ubiquitous: []string{"WHITESPACE", "COMMENT"},
		Anonymous:  []string{"LPAREN", "RPAREN", "DOT", "SEMI"},
		SymbolNames: map[string]string{
			"IDENTIFIER": "identifier",
			"LPAREN":     "(",
			"RPAREN":     ")",
			"DOT":        ".",
			"SEMI":       ";",
		},
		DFA: buildJavaScriptDFA(),
	}
	return Build(g)
}

func buildJavaScriptDFA() *DFA {
	b := NewBuilder()
	start := b.dfa.Start

	// IDENTIFIER: [A-Za-z_$] [A-Za-z0-9_$]*, plus any non-ASCII scalar.
	ident := b.State()
	b.OnRange(start, 'a', 'z', ident)
	b.OnRange(start, 'A', 'Z', ident)
	b.OnBytes(start, []byte{'_', '$'}, ident)
	b.OnUTF8Continuation(start, ident)
	b.OnRange(ident, 'a', 'z', ident)
	b.OnRange(ident, 'A', 'Z', ident)
	b.OnRange(ident, '0', '9', ident)
	b.OnBytes(ident, []byte{'_', '$'}, ident)
	b.OnUTF8Continuation(ident, ident)
	b.Accept(ident, "IDENTIFIER")

	// WHITESPACE, newlines included: line breaks never terminate anything
	// in this grammar, they just pad the next token.
	ws := b.State()
	b.OnBytes(start, []byte{' ', '\t', '\r', '\n'}, ws)
	b.OnBytes(ws, []byte{' ', '\t', '\r', '\n'}, ws)
	b.Accept(ws, "WHITESPACE")

	// COMMENT: "//" to end of line. A lone '/' has no accepting state and
	// surfaces as an invalid token.
	slash := b.State()
	comment := b.State()
	b.On(start, '/', slash)
	b.On(slash, '/', comment)
	b.Accept(comment, "COMMENT")
	for c := 0; c < 256; c++ {
		if byte(c) == '\n' {
			continue
		}
		b.On(comment, byte(c), comment)
	}

	punct := map[byte]string{
		'(': "LPAREN", ')': "RPAREN",
		'.': "DOT", ';': "SEMI",
	}
	for ch, name := range punct {
		s := b.State()
		b.On(start, ch, s)
		b.Accept(s, name)
	}

	return b.Build()
}
