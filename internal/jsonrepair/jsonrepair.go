// Package jsonrepair pulls JSON out of free-form model output and applies a
// few syntactic repairs before parsing.
//
// The repairs are heuristic and lossy. In particular the single-quote rewrite
// will mangle apostrophes inside already double-quoted strings; callers must
// try a plain parse first and only fall back to Repair when that fails.
package jsonrepair

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	singleQuoted  = regexp.MustCompile(`'([^']*?)'`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Kind identifies the top-level shape of a parsed value.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindScalar:
		return "scalar"
	default:
		return "invalid"
	}
}

// Raw is an unvalidated value decoded from model output. It has to be taken
// apart explicitly before any of it becomes a domain type.
type Raw struct {
	kind   Kind
	object map[string]any
	array  []any
	scalar any
}

// Kind reports the top-level shape.
func (r Raw) Kind() Kind { return r.kind }

// Object returns the decoded object if the value is one.
func (r Raw) Object() (map[string]any, bool) {
	return r.object, r.kind == KindObject
}

// Array returns the decoded array if the value is one.
func (r Raw) Array() ([]any, bool) {
	return r.array, r.kind == KindArray
}

// NewRaw classifies an already-decoded value.
func NewRaw(v any) Raw {
	switch t := v.(type) {
	case map[string]any:
		return Raw{kind: KindObject, object: t}
	case []any:
		return Raw{kind: KindArray, array: t}
	default:
		return Raw{kind: KindScalar, scalar: t}
	}
}

// ExtractObject returns the text between the first '{' and the last '}'
// inclusive.
func ExtractObject(text string) (string, bool) {
	return extractBetween(text, "{", "}")
}

// ExtractArray returns the text between the first '[' and the last ']'
// inclusive.
func ExtractArray(text string) (string, bool) {
	return extractBetween(text, "[", "]")
}

func extractBetween(text, open, close string) (string, bool) {
	start := strings.Index(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(text, close)
	if end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Repair strips markdown code fences, rewrites single-quoted strings to
// double-quoted ones and drops trailing commas before a closing brace or
// bracket.
func Repair(text string) string {
	repaired := strings.ReplaceAll(text, "```json", "")
	repaired = strings.ReplaceAll(repaired, "```", "")
	repaired = singleQuoted.ReplaceAllString(repaired, `"$1"`)
	repaired = trailingComma.ReplaceAllString(repaired, "$1")
	return repaired
}

// SafeParse decodes text, retrying once after Repair. It reports false when
// neither attempt produced valid JSON.
func SafeParse(text string) (Raw, bool) {
	if raw, ok := parse(text); ok {
		return raw, true
	}
	return parse(Repair(text))
}

func parse(text string) (Raw, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return Raw{}, false
	}
	return NewRaw(v), true
}
