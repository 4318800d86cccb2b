package assistant

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		text   string
		amount int64
		scaled bool
		ok     bool
	}{
		{text: "under 10000", amount: 10000, ok: true},
		{text: "under 10,000 please", amount: 10000, ok: true},
		{text: "budget 8k", amount: 8000, scaled: true, ok: true},
		{text: "around 1.5 lakh", amount: 150000, scaled: true, ok: true},
		{text: "2 bhk under 15000", amount: 15000, ok: true},
		{text: "2 bhk under 12 thousand", amount: 12000, scaled: true, ok: true},
		{text: "menos de 10 mil", amount: 10000, scaled: true, ok: true},
		{text: "10 हज़ार तक", amount: 10000, scaled: true, ok: true},
		{text: "around 1.29 lakh", amount: 129000, scaled: true, ok: true},
		{text: "around 1.57 lakh", amount: 157000, scaled: true, ok: true},
		{text: "1.58 lakh max", amount: 158000, scaled: true, ok: true},
		{text: "1.234567 lakh", amount: 123456, scaled: true, ok: true},
		{text: "0.999k", amount: 999, scaled: true, ok: true},
		{text: "0.5k", amount: 500, scaled: true, ok: true},
		{text: "budget 200000000000000 lakh"},
		{text: "no numbers here"},
		{text: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			amount, scaled, ok := ExtractAmount(tc.text)
			require.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			require.Equal(t, tc.amount, amount)
			require.Equal(t, tc.scaled, scaled)
		})
	}
}

func TestExtractAmount_DecimalScalesAreExact(t *testing.T) {
	for i := int64(1); i <= 99; i++ {
		text := fmt.Sprintf("1.%02d lakh", i)
		amount, scaled, ok := ExtractAmount(text)
		require.True(t, ok, text)
		require.True(t, scaled, text)
		require.Equal(t, 100_000+i*1_000, amount, text)
	}
	for i := int64(1); i <= 999; i++ {
		text := fmt.Sprintf("0.%03dk", i)
		amount, _, ok := ExtractAmount(text)
		require.True(t, ok, text)
		require.Equal(t, i, amount, text)
	}
}

func TestScaleAmount_Overflow(t *testing.T) {
	_, fits := scaleAmount(math.MaxInt64/100_000+1, "", 100_000)
	require.False(t, fits)

	_, fits = scaleAmount(math.MaxInt64/1_000, "999", 1_000)
	require.False(t, fits)

	v, fits := scaleAmount(math.MaxInt64/1_000, "", 1_000)
	require.True(t, fits)
	require.Equal(t, int64(math.MaxInt64/1_000*1_000), v)
}

func TestBudgetTrigger(t *testing.T) {
	trig := budget("under")

	p, ok := trig(NewInput("under 9000", ""))
	require.True(t, ok)
	require.Equal(t, Params{Amount: 9000, HasAmount: true}, p)

	_, ok = trig(NewInput("room 301", ""))
	require.False(t, ok, "a bare number is not a budget")

	p, ok = trig(NewInput("rs 7000", ""))
	require.True(t, ok)
	require.Equal(t, int64(7000), p.Amount)

	p, ok = trig(NewInput("₹6500 flat", ""))
	require.True(t, ok)
	require.Equal(t, int64(6500), p.Amount)

	_, ok = trig(NewInput("5k", ""))
	require.True(t, ok)
}

func TestReplyTo(t *testing.T) {
	trig := replyTo([]string{"booking"}, "yes")

	_, ok := trig(NewInput("yes", "booking"))
	require.True(t, ok)
	_, ok = trig(NewInput("yes", "greeting"))
	require.False(t, ok)
	_, ok = trig(NewInput("yes", ""))
	require.False(t, ok)
	_, ok = trig(NewInput("yes yes yes yes yes", "booking"))
	require.False(t, ok)

	anyIntent := replyTo(nil, "no")
	_, ok = anyIntent(NewInput("no", "thanks"))
	require.True(t, ok)
}
