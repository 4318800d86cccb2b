package assistant

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxContextualTokens bounds how long a reply may be and still count as a
// short answer to the previous engine message.
const maxContextualTokens = 4

// phrases fires when any phrase occurs in the input.
func phrases(list ...string) Trigger {
	return func(in Input) (Params, bool) {
		return Params{}, in.HasAnyPhrase(list)
	}
}

// prefixes fires when any token starts with one of list.
func prefixes(list ...string) Trigger {
	return func(in Input) (Params, bool) {
		return Params{}, in.HasTokenPrefix(list)
	}
}

// either fires when any of triggers fires; the first one's params win.
func either(triggers ...Trigger) Trigger {
	return func(in Input) (Params, bool) {
		for _, t := range triggers {
			if p, ok := t(in); ok {
				return p, true
			}
		}
		return Params{}, false
	}
}

// replyTo fires for short inputs matching list right after an engine
// message produced by one of intents. An empty intents list accepts any
// previous engine message.
func replyTo(intents []string, list ...string) Trigger {
	return func(in Input) (Params, bool) {
		if in.LastIntent == "" || len(in.Tokens) == 0 || len(in.Tokens) > maxContextualTokens {
			return Params{}, false
		}
		if len(intents) > 0 && !containsString(intents, in.LastIntent) {
			return Params{}, false
		}
		return Params{}, in.HasAnyPhrase(list)
	}
}

// budget fires when the input carries an amount together with a budget
// keyword or currency marker, or when the amount itself has a scale suffix
// such as "8k".
func budget(keywords ...string) Trigger {
	return func(in Input) (Params, bool) {
		amount, scaled, ok := ExtractAmount(in.Text)
		if !ok {
			return Params{}, false
		}
		if scaled || hasCurrencyMarker(in) || in.HasAnyPhrase(keywords) {
			return Params{Amount: amount, HasAmount: true}, true
		}
		return Params{}, false
	}
}

var amountPattern = regexp.MustCompile(`(\d[\d,]*)(?:\.(\d+))?\s*([\p{L}\p{M}]+)?`)

var scaleSuffixes = map[string]int64{
	"k":        1_000,
	"thousand": 1_000,
	"hazar":    1_000,
	"hazaar":   1_000,
	"mil":      1_000,
	"lakh":     100_000,
	"lakhs":    100_000,
	"lac":      100_000,
	// हजार, with and without the precomposed nukta letter, and लाख.
	"\u0939\u091c\u093e\u0930":       1_000,
	"\u0939\u091c\u093c\u093e\u0930": 1_000,
	"\u0939\u095b\u093e\u0930":       1_000,
	"\u0932\u093e\u0916":             100_000,
}

var currencyMarkers = []string{"rs", "inr", "rupees", "rupee", "rupaye", "रुपये", "रुपए", "pesos"}

func hasCurrencyMarker(in Input) bool {
	return strings.Contains(in.Text, "₹") || in.HasAnyPhrase(currencyMarkers)
}

// ExtractAmount finds a monetary amount in normalized text. A match with a
// scale suffix ("15k", "1.5 lakh", "10 mil") wins; otherwise the largest
// plain number is returned so counts like "2 bhk" do not shadow the budget.
// scaled reports whether a scale suffix was applied.
func ExtractAmount(text string) (amount int64, scaled, ok bool) {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		whole := strings.ReplaceAll(m[1], ",", "")
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			continue
		}
		if mult, isScale := scaleSuffixes[m[3]]; isScale {
			if v, fits := scaleAmount(n, m[2], mult); fits && v > 0 {
				return v, true, true
			}
			continue
		}
		if n > amount {
			amount = n
			ok = true
		}
	}
	return amount, false, ok && amount > 0
}

// scaleAmount computes whole.frac * mult in integer arithmetic. mult is a
// power of ten; fraction digits finer than one rupee are truncated. fits is
// false when the result does not fit in an int64.
func scaleAmount(whole int64, frac string, mult int64) (v int64, fits bool) {
	digits := len(strconv.FormatInt(mult, 10)) - 1
	if len(frac) > digits {
		frac = frac[:digits]
	}
	var part int64
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		for i := len(frac); i < digits; i++ {
			f *= 10
		}
		part = f
	}
	if whole > (math.MaxInt64-part)/mult {
		return 0, false
	}
	return whole*mult + part, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
