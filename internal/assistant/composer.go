package assistant

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyLabel prefixes every rendered amount.
const CurrencyLabel = "₹"

// Composer renders a matched rule into reply text and suggestions.
// Amounts are always grouped the English way ("10,000") so the server and
// the client mirror render byte-identical text in every locale.
type Composer struct {
	currency string
	numbers  language.Tag
}

// NewComposer returns the default composer.
func NewComposer() Composer {
	return Composer{currency: CurrencyLabel, numbers: language.English}
}

// FormatAmount renders n with thousands separators and the currency label.
func (c Composer) FormatAmount(n int64) string {
	return c.currency + message.NewPrinter(c.numbers).Sprintf("%d", n)
}

// Compose renders m. Suggestions are a copy of the rule's fixed list.
func (c Composer) Compose(m Match) (string, []string) {
	text := m.Rule.Template
	if m.Params.HasAmount {
		text = strings.ReplaceAll(text, "{amount}", c.FormatAmount(m.Params.Amount))
	}
	suggestions := make([]string, len(m.Rule.Suggestions))
	copy(suggestions, m.Rule.Suggestions)
	return text, suggestions
}
