// Package llmjson turns free-form LLM replies into either a decoded JSON
// value or the raw text the model produced.
package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
)

// Kind tags which half of a Result is populated.
type Kind string

const (
	KindStructured Kind = "structured"
	KindText       Kind = "text"
)

// Result is the outcome of Decode. Value is only meaningful when Kind is
// KindStructured; Raw always holds the cleaned model output.
type Result[T any] struct {
	Kind  Kind
	Value T
	Raw   string
}

// Structured reports whether the reply decoded into T.
func (r Result[T]) Structured() bool {
	return r.Kind == KindStructured
}

// Decode strips an optional markdown code fence and unmarshals the reply
// into T. When neither the whole text nor its first balanced object decode,
// the cleaned text is returned tagged as KindText.
func Decode[T any](raw string) Result[T] {
	cleaned := StripFence(raw)

	var value T
	if cleaned != "" && json.Unmarshal([]byte(cleaned), &value) == nil {
		return Result[T]{Kind: KindStructured, Value: value, Raw: cleaned}
	}
	if object, err := FirstObject(cleaned); err == nil {
		var fromObject T
		if json.Unmarshal([]byte(object), &fromObject) == nil {
			return Result[T]{Kind: KindStructured, Value: fromObject, Raw: cleaned}
		}
	}
	return Result[T]{Kind: KindText, Raw: cleaned}
}

// StripFence removes a surrounding ```json / ``` block and trims whitespace.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	return strings.TrimSpace(text)
}

var errNoObject = errors.New("no balanced JSON object found")

// FirstObject returns the first balanced {...} span in s. Braces inside JSON
// strings are ignored.
func FirstObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], nil
				}
			}
		}
	}
	return "", errNoObject
}
