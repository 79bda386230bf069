package game

import (
	"fmt"
	"strings"
)

type RuleKind int

const (
	NormalRule RuleKind = iota
	ReverseRule
	FallenAceRule
	SameRule
	PlusRule
	CombinedRule
)

var ruleNames = map[RuleKind]string{
	NormalRule:    "normal",
	ReverseRule:   "reverse",
	FallenAceRule: "fallen-ace",
	SameRule:      "same",
	PlusRule:      "plus",
	CombinedRule:  "combined",
}

func (k RuleKind) String() string {
	if name, ok := ruleNames[k]; ok {
		return name
	}
	return "unknown"
}

// Rule decides whether an attacking card flips the card it faces. The zero
// value is the Normal rule. Rules are plain data and safe to share.
type Rule struct {
	kind  RuleKind
	rules []Rule // CombinedRule only
}

func Normal() Rule    { return Rule{kind: NormalRule} }
func Reverse() Rule   { return Rule{kind: ReverseRule} }
func FallenAce() Rule { return Rule{kind: FallenAceRule} }
func Same() Rule      { return Rule{kind: SameRule} }
func Plus() Rule      { return Rule{kind: PlusRule} }

// Combined layers several rules. Same and Plus cannot be combined.
func Combined(rules ...Rule) (Rule, error) {
	if len(rules) == 0 {
		return Rule{}, fmt.Errorf("%w: combined rule needs at least one rule", ErrConfiguration)
	}
	if containsKind(rules, SameRule) && containsKind(rules, PlusRule) {
		return Rule{}, fmt.Errorf("%w: same and plus rules are mutually exclusive", ErrConfiguration)
	}
	sub := make([]Rule, len(rules))
	copy(sub, rules)
	return Rule{kind: CombinedRule, rules: sub}, nil
}

func containsKind(rules []Rule, kind RuleKind) bool {
	for _, r := range rules {
		if r.kind == kind || (r.kind == CombinedRule && containsKind(r.rules, kind)) {
			return true
		}
	}
	return false
}

func (r Rule) Kind() RuleKind { return r.kind }

func (r Rule) String() string {
	if r.kind != CombinedRule {
		return r.kind.String()
	}
	names := make([]string, len(r.rules))
	for i, sub := range r.rules {
		names[i] = sub.String()
	}
	return "combined(" + strings.Join(names, ",") + ")"
}

// ParseRule resolves a rule from its configuration name.
func ParseRule(name string) (Rule, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, n := range ruleNames {
		if n == normalized && kind != CombinedRule {
			return Rule{kind: kind}, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: unknown rule %q", ErrConfiguration, name)
}

// ParseRules resolves a list of rule names. A single name yields that rule,
// several yield a Combined rule and none yields Normal.
func ParseRules(names []string) (Rule, error) {
	switch len(names) {
	case 0:
		return Normal(), nil
	case 1:
		return ParseRule(names[0])
	}
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		r, err := ParseRule(name)
		if err != nil {
			return Rule{}, err
		}
		rules = append(rules, r)
	}
	return Combined(rules...)
}

// ShouldFlip reports whether the card at attacker flips the card one step
// away in direction d. Both cells must be occupied.
func (r Rule) ShouldFlip(g *Grid, attacker Position, d Direction) bool {
	att := g.at(attacker).Card
	defPos := attacker.Step(d)
	def := g.at(defPos).Card
	a, dv := att.Value(d), def.Value(d.Opposite())

	switch r.kind {
	case NormalRule:
		return a > dv
	case ReverseRule:
		return a < dv
	case FallenAceRule:
		if win, special := fallenAce(a, dv); special {
			return win
		}
		return a > dv
	case SameRule:
		if a > dv {
			return true
		}
		// A strict loss is never rescued by matches.
		return a == dv && countSame(g, defPos) >= 2
	case PlusRule:
		return a > dv || countPlus(g, attacker, a+dv) >= 2
	case CombinedRule:
		if win, special := fallenAce(a, dv); special {
			return win
		}
		if a <= dv {
			return false
		}
		for _, sub := range r.rules {
			if sub.ShouldFlip(g, attacker, d) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// fallenAce handles the 1 beats 10 special case. special is false when the
// values fall back to the numeric comparison.
func fallenAce(a, dv int) (win, special bool) {
	switch {
	case a == MinAttack && dv == MaxAttack:
		return true, true
	case a == MaxAttack && dv == MinAttack:
		return false, true
	default:
		return false, false
	}
}

// countSame counts the neighbors of pos whose facing value equals the value
// pos shows toward them.
func countSame(g *Grid, pos Position) int {
	card := g.at(pos).Card
	n := 0
	for _, d := range Directions {
		np := pos.Step(d)
		if !g.InBounds(np.Row, np.Col) {
			continue
		}
		neighbor := g.at(np)
		if neighbor.Kind != Occupied {
			continue
		}
		if card.Value(d) == neighbor.Card.Value(d.Opposite()) {
			n++
		}
	}
	return n
}

// countPlus counts the neighbors of pos whose facing value plus the value
// pos shows toward them adds up to sum.
func countPlus(g *Grid, pos Position, sum int) int {
	card := g.at(pos).Card
	n := 0
	for _, d := range Directions {
		np := pos.Step(d)
		if !g.InBounds(np.Row, np.Col) {
			continue
		}
		neighbor := g.at(np)
		if neighbor.Kind != Occupied {
			continue
		}
		if card.Value(d)+neighbor.Card.Value(d.Opposite()) == sum {
			n++
		}
	}
	return n
}
