package langtable

// Arithmetic is a small expression grammar used by the test suite and
// registered as "arithmetic": numbers, variables, ^, +, * (left-
// associative, increasing precedence), parenthesized groups, a "#" line
// comment, and whitespace — both ubiquitous.
//
//	exponent -> exponent '^' sum   | sum
//	sum      -> sum '+' product    | product
//	product  -> product '*' atom   | atom
//	atom     -> group | NUMBER | VARIABLE
//	group    -> '(' exponent ')'
//
// The chain productions (the "| sum", "| product", "| atom" alternatives)
// are Hidden: reducing one of them re-pushes its single child without
// wrapping it, which is what makes e.g. a bare "x" surface as a lone
// "variable" leaf instead of "(exponent (sum (product (atom (variable)))))".
var Arithmetic Table = buildArithmeticTable()

func buildArithmeticTable() Table {
	g := Grammar{
		Name:  "arithmetic",
		Start: "exponent",
		Productions: []GProd{
			{LHS: "exponent", RHS: []string{"exponent", "CARET", "sum"}, Node: "exponent"},
			{LHS: "exponent", RHS: []string{"sum"}, Hidden: true},
			{LHS: "sum", RHS: []string{"sum", "PLUS", "product"}, Node: "sum"},
			{LHS: "sum", RHS: []string{"product"}, Hidden: true},
			{LHS: "product", RHS: []string{"product", "STAR", "atom"}, Node: "product"},
			{LHS: "product", RHS: []string{"atom"}, Hidden: true},
			{LHS: "atom", RHS: []string{"group"}, Hidden: true},
			{LHS: "atom", RHS: []string{"NUMBER"}, Hidden: true},
			{LHS: "atom", RHS: []string{"VARIABLE"}, Hidden: true},
			{LHS: "group", RHS: []string{"LPAREN", "exponent", "RPAREN"}, Node: "group"},
		},
		Ubiquitous: []string{"WHITESPACE", "COMMENT"},
		Anonymous:  []string{"PLUS", "STAR", "CARET", "LPAREN", "RPAREN"},
		SymbolNames: map[string]string{
			"NUMBER":   "number",
			"VARIABLE": "variable",
			"PLUS":     "+",
			"STAR":     "*",
			"CARET":    "^",
			"LPAREN":   "(",
			"RPAREN":   ")",
		},
		DFA: buildArithmeticDFA(),
	}
	return Build(g)
}

// buildArithmeticDFA builds the lexical automaton for Arithmetic.
//
// Token shapes:
//
//	NUMBER:     [0-9]+
//	VARIABLE:   (letter | '_' | utf8-continuation) (letter | digit | '_' | utf8-continuation)*
//	WHITESPACE: [ \t\r\n]+
//	COMMENT:    '#' any* until '\n' or EOF (the wildcard token from spec.md §4.2)
//	PLUS/STAR/CARET/LPAREN/RPAREN: single literal bytes
func buildArithmeticDFA() *DFA {
	b := NewBuilder()
	start := b.dfa.Start

	// NUMBER
	num := b.State()
	b.OnRange(start, '0', '9', num)
	b.OnRange(num, '0', '9', num)
	b.Accept(num, "NUMBER")

	// VARIABLE
	ident := b.State()
	b.OnRange(start, 'a', 'z', ident)
	b.OnRange(start, 'A', 'Z', ident)
	b.On(start, '_', ident)
	b.OnUTF8Continuation(start, ident)
	b.OnRange(ident, 'a', 'z', ident)
	b.OnRange(ident, 'A', 'Z', ident)
	b.OnRange(ident, '0', '9', ident)
	b.On(ident, '_', ident)
	b.OnUTF8Continuation(ident, ident)
	b.Accept(ident, "VARIABLE")

	// WHITESPACE
	ws := b.State()
	b.OnBytes(start, []byte{' ', '\t', '\r', '\n'}, ws)
	b.OnBytes(ws, []byte{' ', '\t', '\r', '\n'}, ws)
	b.Accept(ws, "WHITESPACE")

	// COMMENT: '#' then any byte except newline, repeated; stops before '\n' or EOF.
	commentStart := b.State()
	commentBody := b.State()
	b.On(start, '#', commentStart)
	b.Accept(commentStart, "COMMENT")
	for c := 0; c < 256; c++ {
		if byte(c) == '\n' {
			continue
		}
		b.On(commentStart, byte(c), commentBody)
		b.On(commentBody, byte(c), commentBody)
	}
	b.Accept(commentBody, "COMMENT")

	// Single-byte punctuation.
	plus := b.State()
	b.On(start, '+', plus)
	b.Accept(plus, "PLUS")

	star := b.State()
	b.On(start, '*', star)
	b.Accept(star, "STAR")

	caret := b.State()
	b.On(start, '^', caret)
	b.Accept(caret, "CARET")

	lparen := b.State()
	b.On(start, '(', lparen)
	b.Accept(lparen, "LPAREN")

	rparen := b.State()
	b.On(start, ')', rparen)
	b.Accept(rparen, "RPAREN")

	return b.Build()
}
