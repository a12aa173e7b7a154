// Package validate checks client input before it reaches the services.
//
// Each field has an ordered list of rules. A rule is a named predicate that
// yields a tagged violation when it fails; the runner evaluates every rule and
// returns all violations together.
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/jhuonas/ai-snippet-service/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	MaxTextLength = 1000
	MinTake       = 1
	MaxTake       = 50
	MinSkip       = 0
	// MaxSkip is the largest integer a float64 represents exactly.
	MaxSkip = 1<<53 - 1
)

// Rule is a predicate over a field value. Valid returns false when the rule is violated.
type Rule[T any] struct {
	Reason  model.Reason
	Message string
	Valid   func(T) bool
}

// Check runs every rule against v and returns the violations for field.
func Check[T any](field string, v T, rules []Rule[T]) []model.Violation {
	var out []model.Violation
	for _, r := range rules {
		if !r.Valid(v) {
			out = append(out, model.Violation{Field: field, Reason: r.Reason, Message: r.Message})
		}
	}
	return out
}

var textRules = []Rule[string]{
	{
		Reason:  model.ReasonRequired,
		Message: "text should not be empty",
		Valid:   func(s string) bool { return s != "" },
	},
	{
		Reason:  model.ReasonWhitespaceOnly,
		Message: "Text cannot be only whitespace",
		Valid:   func(s string) bool { return s == "" || strings.TrimSpace(s) != "" },
	},
	{
		Reason:  model.ReasonTooLong,
		Message: fmt.Sprintf("Text must not exceed %d characters", MaxTextLength),
		Valid:   func(s string) bool { return utf8.RuneCountInString(s) <= MaxTextLength },
	},
}

var takeRules = []Rule[float64]{
	{
		Reason:  model.ReasonOutOfRange,
		Message: fmt.Sprintf("take must be at least %d", MinTake),
		Valid:   func(n float64) bool { return n >= MinTake },
	},
	{
		Reason:  model.ReasonOutOfRange,
		Message: fmt.Sprintf("take must not exceed %d", MaxTake),
		Valid:   func(n float64) bool { return n <= MaxTake },
	},
	wholeNumber("take"),
}

var skipRules = []Rule[float64]{
	{
		Reason:  model.ReasonOutOfRange,
		Message: fmt.Sprintf("skip must be at least %d", MinSkip),
		Valid:   func(n float64) bool { return n >= MinSkip },
	},
	{
		Reason:  model.ReasonOutOfRange,
		Message: fmt.Sprintf("skip must not exceed %d", MaxSkip),
		Valid:   func(n float64) bool { return n <= MaxSkip },
	},
	wholeNumber("skip"),
}

func wholeNumber(name string) Rule[float64] {
	return Rule[float64]{
		Reason:  model.ReasonNotANumber,
		Message: name + " must be a whole number",
		Valid:   func(n float64) bool { return n == math.Trunc(n) },
	}
}

// CreateSnippetInput is the normalized payload for POST /snippets.
type CreateSnippetInput struct {
	Text string
}

// CreateSnippet validates a raw JSON request body. Only the "text" field is
// accepted; its value is returned verbatim (no trimming).
func CreateSnippet(body []byte) (CreateSnippetInput, error) {
	var payload map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return CreateSnippetInput{}, model.NewValidationError(model.Violation{
			Field:   "body",
			Reason:  model.ReasonTypeMismatch,
			Message: "request body must be a JSON object",
		})
	}

	var violations []model.Violation
	var in CreateSnippetInput

	raw, ok := payload["text"]
	switch {
	case !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")):
		violations = append(violations, model.Violation{
			Field: "text", Reason: model.ReasonRequired, Message: "text should not be empty",
		})
	default:
		if err := json.Unmarshal(raw, &in.Text); err != nil {
			violations = append(violations, model.Violation{
				Field: "text", Reason: model.ReasonTypeMismatch, Message: "text must be a string",
			})
		} else {
			violations = append(violations, Check("text", in.Text, textRules)...)
		}
	}

	violations = append(violations, unknownFields(keysOf(payload), "text")...)

	if len(violations) > 0 {
		return CreateSnippetInput{}, model.NewValidationError(violations...)
	}
	return in, nil
}

// PaginationQuery validates the optional take/skip query parameters.
// Absent parameters stay nil; defaults are the service's concern.
func PaginationQuery(q url.Values) (model.PageRequest, error) {
	var req model.PageRequest
	var violations []model.Violation

	violations = append(violations, unknownFields(keysOf(q), "take", "skip")...)

	take, vs := intParam(q, "take", takeRules)
	violations = append(violations, vs...)
	skip, vs := intParam(q, "skip", skipRules)
	violations = append(violations, vs...)

	if len(violations) > 0 {
		return model.PageRequest{}, model.NewValidationError(violations...)
	}
	req.Take = take
	req.Skip = skip
	return req, nil
}

// intParam parses a single numeric query parameter and applies rules to it.
// Any decimal or exponent form is accepted ("1.0", "1e1"); an empty value
// reads as 0. NaN and infinities are not numbers. Range rules run before the
// whole-number rule, so "99999999999999999999" is out of range and "1.5" is
// tagged NotANumber.
func intParam(q url.Values, name string, rules []Rule[float64]) (*int, []model.Violation) {
	values, ok := q[name]
	if !ok {
		return nil, nil
	}
	notANumber := []model.Violation{{
		Field: name, Reason: model.ReasonNotANumber, Message: name + " must be a number",
	}}
	if len(values) != 1 {
		return nil, notANumber
	}
	f, ok := parseNumber(values[0])
	if !ok {
		return nil, notANumber
	}
	if vs := Check(name, f, rules); len(vs) > 0 {
		return nil, vs
	}
	n := int(f)
	return &n, nil
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports ErrRange with ±Inf for overflowing input.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, false
		}
	}
	if math.IsNaN(f) || (math.IsInf(f, 0) && err == nil) {
		return 0, false
	}
	return f, true
}

func unknownFields(keys []string, allowed ...string) []model.Violation {
	var out []model.Violation
	for _, k := range keys {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			out = append(out, model.Violation{
				Field:   k,
				Reason:  model.ReasonUnknownField,
				Message: fmt.Sprintf("property %s should not exist", k),
			})
		}
	}
	return out
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
