package langtable

// JSON is a small JSON grammar used by the test suite: objects, arrays,
// strings, numbers, and the true/false/null literals, with whitespace as
// the only ubiquitous token.
//
//	document -> value
//	value    -> object | array | STRING | NUMBER | TRUE | FALSE | NULL
//	object   -> '{' '}' | '{' members '}'
//	members  -> pair | members ',' pair
//	pair     -> STRING ':' value
//	array    -> '[' ']' | '[' elements ']'
//	elements -> value | elements ',' value
//
// "members" and "elements" are Hidden left-recursive list-builders: each
// hidden reduction flattens its popped children into the node above it
// instead of wrapping them, which is how "array"/"object" end up with the
// comma-separated values as direct children (see pkg/parser's reduce
// logic) rather than an interposed "elements"/"members" wrapper node.
var JSON Table = buildJSONTable()

func buildJSONTable() Table {
	g := Grammar{
		Name:  "json",
		Start: "value",
		Productions: []GProd{
			{LHS: "value", RHS: []string{"object"}, Hidden: true},
			{LHS: "value", RHS: []string{"array"}, Hidden: true},
			{LHS: "value", RHS: []string{"STRING"}, Hidden: true},
			{LHS: "value", RHS: []string{"NUMBER"}, Hidden: true},
			{LHS: "value", RHS: []string{"TRUE"}, Hidden: true},
			{LHS: "value", RHS: []string{"FALSE"}, Hidden: true},
			{LHS: "value", RHS: []string{"NULL"}, Hidden: true},

			{LHS: "object", RHS: []string{"LBRACE", "RBRACE"}, Node: "object"},
			{LHS: "object", RHS: []string{"LBRACE", "members", "RBRACE"}, Node: "object"},
			{LHS: "members", RHS: []string{"pair"}, Hidden: true},
			{LHS: "members", RHS: []string{"members", "COMMA", "pair"}, Hidden: true},
			{LHS: "pair", RHS: []string{"STRING", "COLON", "value"}, Node: "pair"},

			{LHS: "array", RHS: []string{"LBRACKET", "RBRACKET"}, Node: "array"},
			{LHS: "array", RHS: []string{"LBRACKET", "elements", "RBRACKET"}, Node: "array"},
			{LHS: "elements", RHS: []string{"value"}, Hidden: true},
			{LHS: "elements", RHS: []string{"elements", "COMMA", "value"}, Hidden: true},
		},
		Ubiquitous: []string{"WHITESPACE"},
		Anonymous:  []string{"LBRACE", "RBRACE", "LBRACKET", "RBRACKET", "COMMA", "COLON"},
		SymbolNames: map[string]string{
			"STRING":   "string",
			"NUMBER":   "number",
			"TRUE":     "true",
			"FALSE":    "false",
			"NULL":     "null",
			"LBRACE":   "{",
			"RBRACE":   "}",
			"LBRACKET": "[",
			"RBRACKET": "]",
			"COMMA":    ",",
			"COLON":    ":",
		},
		DFA: buildJSONDFA(),
	}
	return Build(g)
}

// buildJSONDFA builds the lexical automaton for JSON.
func buildJSONDFA() *DFA {
	b := NewBuilder()
	start := b.dfa.Start

	// NUMBER: -?[0-9]+(.[0-9]+)?([eE][+-]?[0-9]+)?  (a pragmatic subset)
	negative := b.State() // consumed '-', no digit yet: not accepting
	digit := b.State()
	b.On(start, '-', negative)
	b.OnRange(negative, '0', '9', digit)
	b.OnRange(start, '0', '9', digit)
	b.OnRange(digit, '0', '9', digit)
	b.Accept(digit, "NUMBER")
	dot := b.State()
	b.On(digit, '.', dot)
	frac := b.State()
	b.OnRange(dot, '0', '9', frac)
	b.OnRange(frac, '0', '9', frac)
	b.Accept(frac, "NUMBER")
	expMark := b.State()
	b.OnBytes(digit, []byte{'e', 'E'}, expMark)
	b.OnBytes(frac, []byte{'e', 'E'}, expMark)
	expSign := b.State()
	b.OnBytes(expMark, []byte{'+', '-'}, expSign)
	expDigits := b.State()
	b.OnRange(expMark, '0', '9', expDigits)
	b.OnRange(expSign, '0', '9', expDigits)
	b.OnRange(expDigits, '0', '9', expDigits)
	b.Accept(expDigits, "NUMBER")

	// STRING: "..." with backslash escapes, no embedded raw newline.
	strOpen := b.State()
	strBody := b.State()
	strEscape := b.State()
	strClose := b.State()
	b.On(start, '"', strOpen)
	b.On(strOpen, '"', strClose)
	for c := 0; c < 256; c++ {
		if c == '"' || c == '\\' || c == '\n' {
			continue
		}
		b.On(strOpen, byte(c), strBody)
		b.On(strBody, byte(c), strBody)
	}
	b.On(strOpen, '\\', strEscape)
	b.On(strBody, '\\', strEscape)
	for c := 0; c < 256; c++ {
		b.On(strEscape, byte(c), strBody)
	}
	b.On(strBody, '"', strClose)
	b.Accept(strClose, "STRING")

	// Keywords.
	addLiteral(b, start, "true", "TRUE")
	addLiteral(b, start, "false", "FALSE")
	addLiteral(b, start, "null", "NULL")

	// WHITESPACE
	ws := b.State()
	b.OnBytes(start, []byte{' ', '\t', '\r', '\n'}, ws)
	b.OnBytes(ws, []byte{' ', '\t', '\r', '\n'}, ws)
	b.Accept(ws, "WHITESPACE")

	// Single-byte punctuation.
	punct := map[byte]string{
		'{': "LBRACE", '}': "RBRACE",
		'[': "LBRACKET", ']': "RBRACKET",
		',': "COMMA", ':': "COLON",
	}
	for ch, name := range punct {
		s := b.State()
		b.On(start, ch, s)
		b.Accept(s, name)
	}

	return b.Build()
}

// addLiteral adds a chain of states spelling out word, starting from start,
// accepting as symbolName only once the full word has been consumed.
func addLiteral(b *Builder, start DFAState, word, symbolName string) {
	cur := start
	for i := 0; i < len(word); i++ {
		next := b.State()
		b.On(cur, word[i], next)
		cur = next
	}
	b.Accept(cur, symbolName)
}
