package langtable

// StaticTable is the Table implementation produced by Build. Every field is
// populated once, at construction time, and never mutated afterward.
type StaticTable struct {
	name        string
	start       ParseState
	startSymbol SymbolID
	endSymbol   SymbolID
	actions     [][]Action
	gotos       [][]int
	productions []Production
	symbolNames []string
	ubiquitous  SymbolSet
	anonymous   SymbolSet
	dfa         *DFA
}

func (t *StaticTable) Name() string             { return t.name }
func (t *StaticTable) StartState() ParseState    { return t.start }
func (t *StaticTable) StartSymbol() SymbolID     { return t.startSymbol }
func (t *StaticTable) EndSymbol() SymbolID       { return t.endSymbol }
func (t *StaticTable) DFA() *DFA                 { return t.dfa }
func (t *StaticTable) IsUbiquitous(s SymbolID) bool { return t.ubiquitous.Contains(s) }
func (t *StaticTable) IsAnonymous(s SymbolID) bool  { return t.anonymous.Contains(s) }

func (t *StaticTable) Action(state ParseState, sym SymbolID) Action {
	if int(state) >= len(t.actions) || int(sym) >= len(t.actions[state]) {
		return Action{Kind: ActionError}
	}
	return t.actions[state][sym]
}

func (t *StaticTable) Goto(state ParseState, lhs SymbolID) (ParseState, bool) {
	if int(state) >= len(t.gotos) || int(lhs) >= len(t.gotos[state]) {
		return 0, false
	}
	next := t.gotos[state][lhs]
	if next < 0 {
		return 0, false
	}
	return ParseState(next), true
}

func (t *StaticTable) Production(id ProductionID) Production {
	if int(id) >= len(t.productions) {
		return Production{}
	}
	return t.productions[id]
}

func (t *StaticTable) SymbolName(sym SymbolID) string {
	if int(sym) >= len(t.symbolNames) {
		return "?"
	}
	return t.symbolNames[sym]
}

// LexState returns the DFA's start state. This table family has a single
// lexical mode regardless of parse state; languages needing contextual
// lexing (e.g. regex-vs-divide) would vary this per state.
func (t *StaticTable) LexState(ParseState) DFAState {
	if t.dfa == nil {
		return InvalidDFAState
	}
	return t.dfa.Start
}

// ValidSymbolsForState reports which terminals have a non-error action from
// state: it always returns the full set, never the empty "no hint" value.
// The lexer does not consult it (see SPEC_FULL.md's "external tokens"
// supplement).
func (t *StaticTable) ValidSymbolsForState(state ParseState) SymbolSet {
	var set SymbolSet
	if int(state) >= len(t.actions) {
		return set
	}
	for sym, action := range t.actions[state] {
		if action.Kind != ActionError {
			set.Add(SymbolID(sym))
		}
	}
	return set
}
