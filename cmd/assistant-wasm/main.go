//go:build js && wasm

// Command assistant-wasm exposes the offline assistant to the browser UI.
// It is loaded only when the conversation service cannot be reached.
package main

import (
	"encoding/json"
	"syscall/js"
	"time"

	"rental-assistant/internal/domain"
	"rental-assistant/internal/mirror"
)

type wireMessage struct {
	Speaker     string   `json:"speaker"`
	Text        string   `json:"text"`
	Timestamp   string   `json:"timestamp"`
	Suggestions []string `json:"suggestions"`
	Intent      string   `json:"intent,omitempty"`
}

type sendResult struct {
	CallerMessage *wireMessage `json:"callerMessage,omitempty"`
	EngineMessage *wireMessage `json:"engineMessage,omitempty"`
	Locale        string       `json:"locale,omitempty"`
	Error         string       `json:"error,omitempty"`
}

func toWire(m domain.Message) *wireMessage {
	return &wireMessage{
		Speaker:     string(m.Speaker),
		Text:        m.Text,
		Timestamp:   m.Timestamp.UTC().Format(time.RFC3339Nano),
		Suggestions: m.Suggestions,
		Intent:      m.Intent,
	}
}

func fromWire(in []wireMessage) []domain.Message {
	out := make([]domain.Message, 0, len(in))
	for _, m := range in {
		ts, _ := time.Parse(time.RFC3339Nano, m.Timestamp)
		if domain.Speaker(m.Speaker) == domain.SpeakerCaller {
			out = append(out, domain.CallerMessage(m.Text, ts))
			continue
		}
		out = append(out, domain.EngineMessage(m.Text, m.Intent, m.Suggestions, ts))
	}
	return out
}

func encode(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"INTERNAL_ERROR"}`
	}
	return string(b)
}

func main() {
	session := mirror.NewSession(nil)

	// assistantRestore(locale, messagesJSON[, maxMessageLength]) seeds the
	// session with the last conversation view fetched from the service.
	js.Global().Set("assistantRestore", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 2 {
			return encode(sendResult{Error: "INVALID_INPUT"})
		}
		var msgs []wireMessage
		if err := json.Unmarshal([]byte(args[1].String()), &msgs); err != nil {
			return encode(sendResult{Error: "INVALID_INPUT"})
		}
		locale, ok := domain.ParseLocale(args[0].String())
		if !ok {
			locale = domain.BaseLocale
		}
		opts := []mirror.Option{mirror.WithHistory(locale, fromWire(msgs))}
		if len(args) > 2 && args[2].Type() == js.TypeNumber {
			opts = append(opts, mirror.WithMaxMessageLength(args[2].Int()))
		}
		session = mirror.NewSession(nil, opts...)
		return encode(sendResult{Locale: string(session.Locale())})
	}))

	js.Global().Set("assistantSend", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 1 {
			return encode(sendResult{Error: "INVALID_INPUT"})
		}
		hint := ""
		if len(args) > 1 && args[1].Type() == js.TypeString {
			hint = args[1].String()
		}
		caller, reply, err := session.Send(args[0].String(), hint)
		if err != nil {
			return encode(sendResult{Error: "INVALID_INPUT"})
		}
		return encode(sendResult{
			CallerMessage: toWire(caller),
			EngineMessage: toWire(reply),
			Locale:        string(session.Locale()),
		})
	}))

	js.Global().Set("assistantClear", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		session.Clear()
		return nil
	}))

	select {}
}
