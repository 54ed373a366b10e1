package langtable

import (
	"fmt"
	"sort"
	"strings"
)

// endSymbolName is the synthetic end-of-input terminal used by the SLR(1)
// construction; it never appears in a Grammar's own Productions.
const endSymbolName = "$end"

// augmentedStartName is the synthetic augmented start symbol S' -> Start.
const augmentedStartName = "$start"

type item struct {
	prod int
	dot  int
}

type itemSet struct {
	items []item
}

func (s itemSet) key() string {
	keys := make([]string, len(s.items))
	for i, it := range s.items {
		keys[i] = fmt.Sprintf("%d.%d", it.prod, it.dot)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// staticProd is the internal production representation used during
// construction, before being converted to a Production.
type staticProd struct {
	lhs    string
	rhs    []string
	node   string
	hidden bool
}

// Build runs an SLR(1) table construction over g and returns the resulting
// Table. It panics on grammar errors (ambiguous/conflicting grammars) since
// it only ever runs, once, over the three fixed grammars this package ships —
// a construction failure there is a programming error in this package, not
// a runtime condition callers need to handle.
func Build(g Grammar) Table {
	b := &slrBuilder{g: g}
	b.run()
	return b.table()
}

type slrBuilder struct {
	g Grammar

	symbolID   map[string]SymbolID
	symbolName []string
	terminals  map[string]bool

	prods []staticProd // index 0 is the augmented start production

	firstSets  map[string]map[string]bool
	followSets map[string]map[string]bool

	states      []itemSet
	stateIndex  map[string]int
	transitions []map[string]int // transitions[state][symbol] = state

	actions [][]Action // actions[state][symbolID]
	gotos   [][]int    // gotos[state][symbolID], -1 if undefined
}

func (b *slrBuilder) run() {
	b.collectSymbols()
	b.computeFirstSets()
	b.computeFollowSets()
	b.buildAutomaton()
	b.buildTables()
}

func (b *slrBuilder) collectSymbols() {
	b.symbolID = map[string]SymbolID{}
	b.terminals = map[string]bool{}

	nonTerminals := map[string]bool{augmentedStartName: true}
	for _, p := range b.g.Productions {
		nonTerminals[p.LHS] = true
	}

	add := func(name string) {
		if _, ok := b.symbolID[name]; ok {
			return
		}
		id := SymbolID(len(b.symbolName))
		b.symbolID[name] = id
		b.symbolName = append(b.symbolName, name)
	}

	// $end gets id 0 so zero-valued lookahead sets behave predictably.
	add(endSymbolName)
	add(augmentedStartName)
	add(b.g.Start)
	for _, p := range b.g.Productions {
		add(p.LHS)
		for _, s := range p.RHS {
			add(s)
		}
	}
	// Ubiquitous terminals appear in no production but still need ids for
	// the DFA's accept states and the table's ubiquitous set.
	for _, name := range b.g.Ubiquitous {
		add(name)
	}
	for name := range b.symbolID {
		if !nonTerminals[name] {
			b.terminals[name] = true
		}
	}

	b.prods = append(b.prods, staticProd{lhs: augmentedStartName, rhs: []string{b.g.Start}, hidden: true})
	for _, p := range b.g.Productions {
		b.prods = append(b.prods, staticProd{lhs: p.LHS, rhs: p.RHS, node: p.Node, hidden: p.Hidden})
	}
}

func (b *slrBuilder) isTerminal(sym string) bool { return b.terminals[sym] }

func (b *slrBuilder) computeFirstSets() {
	b.firstSets = map[string]map[string]bool{}
	for name := range b.symbolID {
		b.firstSets[name] = map[string]bool{}
		if b.isTerminal(name) {
			b.firstSets[name][name] = true
		}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range b.prods {
			target := b.firstSets[p.lhs]
			nullable := true
			for _, s := range p.rhs {
				for sym := range b.firstSets[s] {
					if sym != "" && !target[sym] {
						target[sym] = true
						changed = true
					}
				}
				if !b.nullable(s) {
					nullable = false
					break
				}
			}
			if len(p.rhs) == 0 {
				nullable = true
			}
			if nullable && !target[""] {
				target[""] = true
				changed = true
			}
		}
	}
}

func (b *slrBuilder) nullable(sym string) bool {
	return b.firstSets[sym][""]
}

func (b *slrBuilder) firstOfSeq(seq []string) map[string]bool {
	result := map[string]bool{}
	for _, s := range seq {
		for sym := range b.firstSets[s] {
			if sym != "" {
				result[sym] = true
			}
		}
		if !b.nullable(s) {
			return result
		}
	}
	result[""] = true
	return result
}

func (b *slrBuilder) computeFollowSets() {
	b.followSets = map[string]map[string]bool{}
	for name := range b.symbolID {
		b.followSets[name] = map[string]bool{}
	}
	b.followSets[augmentedStartName][endSymbolName] = true

	changed := true
	for changed {
		changed = false
		for _, p := range b.prods {
			for i, s := range p.rhs {
				if b.isTerminal(s) {
					continue
				}
				rest := p.rhs[i+1:]
				firstRest := b.firstOfSeq(rest)
				target := b.followSets[s]
				for sym := range firstRest {
					if sym != "" && !target[sym] {
						target[sym] = true
						changed = true
					}
				}
				if firstRest[""] || len(rest) == 0 {
					for sym := range b.followSets[p.lhs] {
						if !target[sym] {
							target[sym] = true
							changed = true
						}
					}
				}
			}
		}
	}
}

func (b *slrBuilder) closure(items []item) itemSet {
	set := map[string]item{}
	queue := append([]item{}, items...)
	for i, it := range queue {
		set[fmt.Sprintf("%d.%d", it.prod, it.dot)] = it
		_ = i
	}
	for i := 0; i < len(queue); i++ {
		it := queue[i]
		p := b.prods[it.prod]
		if it.dot >= len(p.rhs) {
			continue
		}
		sym := p.rhs[it.dot]
		if b.isTerminal(sym) {
			continue
		}
		for pi, pp := range b.prods {
			if pp.lhs != sym {
				continue
			}
			ni := item{prod: pi, dot: 0}
			key := fmt.Sprintf("%d.%d", ni.prod, ni.dot)
			if _, ok := set[key]; !ok {
				set[key] = ni
				queue = append(queue, ni)
			}
		}
	}
	out := itemSet{}
	for _, it := range set {
		out.items = append(out.items, it)
	}
	sort.Slice(out.items, func(i, j int) bool {
		if out.items[i].prod != out.items[j].prod {
			return out.items[i].prod < out.items[j].prod
		}
		return out.items[i].dot < out.items[j].dot
	})
	return out
}

func (b *slrBuilder) gotoSet(set itemSet, sym string) itemSet {
	var next []item
	for _, it := range set.items {
		p := b.prods[it.prod]
		if it.dot < len(p.rhs) && p.rhs[it.dot] == sym {
			next = append(next, item{prod: it.prod, dot: it.dot + 1})
		}
	}
	if len(next) == 0 {
		return itemSet{}
	}
	return b.closure(next)
}

func (b *slrBuilder) buildAutomaton() {
	start := b.closure([]item{{prod: 0, dot: 0}})
	b.stateIndex = map[string]int{}
	b.states = []itemSet{start}
	b.stateIndex[start.key()] = 0
	b.transitions = []map[string]int{{}}

	for i := 0; i < len(b.states); i++ {
		set := b.states[i]
		symSeen := map[string]bool{}
		for _, it := range set.items {
			p := b.prods[it.prod]
			if it.dot >= len(p.rhs) {
				continue
			}
			symSeen[p.rhs[it.dot]] = true
		}
		for sym := range symSeen {
			target := b.gotoSet(set, sym)
			if len(target.items) == 0 {
				continue
			}
			key := target.key()
			idx, ok := b.stateIndex[key]
			if !ok {
				idx = len(b.states)
				b.stateIndex[key] = idx
				b.states = append(b.states, target)
				b.transitions = append(b.transitions, map[string]int{})
			}
			b.transitions[i][sym] = idx
		}
	}
}

func (b *slrBuilder) buildTables() {
	n := len(b.states)
	numSymbols := len(b.symbolName)
	b.actions = make([][]Action, n)
	b.gotos = make([][]int, n)
	for i := 0; i < n; i++ {
		b.actions[i] = make([]Action, numSymbols)
		b.gotos[i] = make([]int, numSymbols)
		for j := range b.gotos[i] {
			b.gotos[i][j] = -1
		}
	}

	for i, set := range b.states {
		for sym, target := range b.transitions[i] {
			symID := b.symbolID[sym]
			if b.isTerminal(sym) {
				b.actions[i][symID] = Action{Kind: ActionShift, Next: ParseState(target)}
			} else {
				b.gotos[i][symID] = target
			}
		}
		for _, it := range set.items {
			p := b.prods[it.prod]
			if it.dot != len(p.rhs) {
				continue
			}
			if p.lhs == augmentedStartName {
				endID := b.symbolID[endSymbolName]
				b.actions[i][endID] = Action{Kind: ActionAccept}
				continue
			}
			for sym := range b.followSets[p.lhs] {
				symID := b.symbolID[sym]
				existing := b.actions[i][symID]
				if existing.Kind == ActionShift {
					panic(fmt.Sprintf("langtable: shift/reduce conflict in grammar %q, state %d, symbol %q", b.g.Name, i, sym))
				}
				if existing.Kind == ActionReduce {
					panic(fmt.Sprintf("langtable: reduce/reduce conflict in grammar %q, state %d, symbol %q", b.g.Name, i, sym))
				}
				b.actions[i][symID] = Action{Kind: ActionReduce, Prod: ProductionID(it.prod)}
			}
		}
	}
}

func (b *slrBuilder) table() *StaticTable {
	productions := make([]Production, len(b.prods))
	for i, p := range b.prods {
		productions[i] = Production{
			Name:   p.node,
			LHS:    b.symbolID[p.lhs],
			RHSLen: len(p.rhs),
			Hidden: p.hidden,
		}
	}

	names := make([]string, len(b.symbolName))
	copy(names, b.symbolName)
	for term, display := range b.g.SymbolNames {
		if id, ok := b.symbolID[term]; ok {
			names[id] = display
		}
	}

	ubiquitous := SymbolSet{}
	for _, name := range b.g.Ubiquitous {
		ubiquitous.Add(b.symbolID[name])
	}
	anonymous := SymbolSet{}
	for _, name := range b.g.Anonymous {
		anonymous.Add(b.symbolID[name])
	}

	if b.g.DFA != nil {
		b.g.DFA.Resolve(func(name string) SymbolID {
			id, ok := b.symbolID[name]
			if !ok {
				panic("langtable: DFA accepts unknown terminal " + name + " in grammar " + b.g.Name)
			}
			return id
		})
	}

	return &StaticTable{
		name:        b.g.Name,
		start:       ParseState(0),
		startSymbol: b.symbolID[b.g.Start],
		endSymbol:   b.symbolID[endSymbolName],
		actions:     b.actions,
		gotos:       b.gotos,
		productions: productions,
		symbolNames: names,
		ubiquitous:  ubiquitous,
		anonymous:   anonymous,
		dfa:         b.g.DFA,
	}
}
