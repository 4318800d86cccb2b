package assistant

import (
	"errors"
	"fmt"

	"rental-assistant/internal/domain"
)

// FallbackRuleID is the id of the terminal rule of every ruleset.
const FallbackRuleID = "fallback"

// Params carries values extracted by a trigger for template rendering.
type Params struct {
	Amount    int64
	HasAmount bool
}

// Trigger decides whether a rule applies to an input.
type Trigger func(in Input) (Params, bool)

// Rule pairs a trigger with a reply template and fixed suggestions.
type Rule struct {
	ID      string
	Trigger Trigger
	// Contextual rules also inspect the previous engine intent. They are
	// evaluated after every context-free rule.
	Contextual  bool
	Template    string
	Suggestions []string
}

// Ruleset is the ordered rule list for one locale. Order is significant:
// the first rule whose trigger fires wins.
type Ruleset struct {
	locale domain.Locale
	rules  []Rule
}

// Match is the result of evaluating a ruleset.
type Match struct {
	Rule   Rule
	Params Params
}

// NewRuleset validates rules and returns them as an ordered ruleset. The
// last rule must be the fallback (nil trigger), context-free rules must
// precede contextual ones, and ids must be unique.
func NewRuleset(locale domain.Locale, rules ...Rule) (Ruleset, error) {
	if len(rules) == 0 {
		return Ruleset{}, errors.New("assistant: ruleset must not be empty")
	}
	seen := make(map[string]struct{}, len(rules))
	contextual := false
	for i, r := range rules {
		if r.ID == "" {
			return Ruleset{}, fmt.Errorf("assistant: rule %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return Ruleset{}, fmt.Errorf("assistant: duplicate rule id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		last := i == len(rules)-1
		if r.ID == FallbackRuleID || r.Trigger == nil {
			if !last || r.ID != FallbackRuleID || r.Trigger != nil {
				return Ruleset{}, fmt.Errorf("assistant: rule %q: fallback must be last, have no trigger and be named %q", r.ID, FallbackRuleID)
			}
			continue
		}
		if last {
			return Ruleset{}, fmt.Errorf("assistant: ruleset for %s does not end with the fallback rule", locale)
		}
		if r.Contextual {
			contextual = true
		} else if contextual {
			return Ruleset{}, fmt.Errorf("assistant: context-free rule %q follows a contextual rule", r.ID)
		}
	}
	return Ruleset{locale: locale, rules: append([]Rule(nil), rules...)}, nil
}

// MustRuleset is NewRuleset that panics on invalid input. It is meant for
// the built-in rule tables.
func MustRuleset(locale domain.Locale, rules ...Rule) Ruleset {
	rs, err := NewRuleset(locale, rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// Locale returns the ruleset's locale.
func (rs Ruleset) Locale() domain.Locale { return rs.locale }

// IDs returns rule ids in evaluation order.
func (rs Ruleset) IDs() []string {
	ids := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		ids[i] = r.ID
	}
	return ids
}

// Rule returns the rule with id.
func (rs Ruleset) Rule(id string) (Rule, bool) {
	for _, r := range rs.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Match evaluates rules top to bottom and returns the first that fires, or
// the fallback.
func (rs Ruleset) Match(in Input) Match {
	for _, r := range rs.rules {
		if r.Trigger == nil {
			continue
		}
		if p, ok := r.Trigger(in); ok {
			return Match{Rule: r, Params: p}
		}
	}
	return Match{Rule: rs.rules[len(rs.rules)-1]}
}
