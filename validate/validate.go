// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/farmops/fieldsync/models"
)

// Format is a field's declared format class.
type Format int

const (
	FormatText Format = iota
	FormatName
	FormatPhone
	FormatNationalID
	FormatDecimal
	FormatInteger
	FormatYesNo
	FormatList
)

// Rule is one field's declarative validation rule.
type Rule struct {
	Required bool
	Format   Format

	// MatchField names another field this one must equal exactly,
	// e.g. confirm_account_no matching account_no.
	MatchField string

	// Label is the human name used in error messages. Falls back to the
	// field name when empty.
	Label string
}

// Rules maps field name to rule for one section.
type Rules map[string]Rule

// Result is the outcome of validating a single field.
type Result struct {
	Value models.FieldValue // normalized
	Err   string            // empty when valid
}

// Field validates and normalizes one field against its rule. It is pure:
// same inputs, same outputs, and normalization is a fixed point
// (validating an already-normalized value changes nothing).
//
// Cross-field (MatchField) rules need the rest of the form and are
// handled by Section; Field ignores them.
func Field(raw models.FieldValue, rule Rule) Result {
	if !raw.IsSet() {
		// Required-ness of untouched fields is the completion predicate's
		// business, not an inline error.
		return Result{Value: raw}
	}

	label := rule.Label

	switch rule.Format {
	case FormatText:
		return Result{Value: models.Text(normalizeText(raw.Text))}

	case FormatName:
		return Result{Value: models.Text(normalizeName(raw.Text))}

	case FormatPhone:
		v := normalizePhone(raw.Text)
		if v != "" && len(v) != 9 {
			return Result{Value: models.Text(v), Err: msg(label, "must be a valid phone number")}
		}
		return Result{Value: models.Text(v)}

	case FormatNationalID:
		v := normalizeNationalID(raw.Text)
		if v != "" && !validNationalID(v) {
			return Result{Value: models.Text(v), Err: msg(label, "must be a valid national ID")}
		}
		return Result{Value: models.Text(v)}

	case FormatDecimal:
		v := normalizeDecimal(raw.Text)
		if v == "" {
			return Result{Value: models.Text(v), Err: msg(label, "must be a number")}
		}
		if v == "0" {
			return Result{Value: models.Text(v), Err: msg(label, "must be greater than zero")}
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return Result{Value: models.Text(v), Err: msg(label, "must be a number")}
		}
		return Result{Value: models.Text(v)}

	case FormatInteger:
		v := normalizeInteger(raw.Text)
		if v == "" {
			return Result{Value: models.Text(v), Err: msg(label, "must be a whole number")}
		}
		return Result{Value: models.Text(v)}

	case FormatYesNo:
		if raw.Kind != models.KindYesNo {
			return Result{Value: raw, Err: msg(label, "must be Yes or No")}
		}
		return Result{Value: raw}

	case FormatList:
		if raw.Kind != models.KindList {
			return Result{Value: raw, Err: msg(label, "must be a selection")}
		}
		return Result{Value: raw}
	}

	return Result{Value: raw}
}

// Section validates every field of a form against its rule table,
// returning normalized fields and the error map. Fields without a rule
// pass through untouched. Cross-field equality is re-checked here on
// every call, so editing either side of a pair updates the error.
func Section(fields models.Fields, rules Rules) (models.Fields, map[string]string) {
	normalized := fields.Clone()
	errs := map[string]string{}

	for name, rule := range rules {
		raw, ok := fields[name]
		if !ok || !raw.IsSet() {
			continue
		}
		res := Field(raw, rule)
		normalized[name] = res.Value
		if res.Err != "" {
			errs[name] = res.Err
		}
	}

	// Cross-field checks run as a second pass so both sides are already
	// normalized; map iteration order must not matter.
	for name, rule := range rules {
		if rule.MatchField == "" || errs[name] != "" {
			continue
		}
		v := normalized[name]
		if !v.IsSet() {
			continue
		}
		if !v.Equal(normalized[rule.MatchField]) {
			errs[name] = msg(rule.Label, "must match "+labelFor(rule.MatchField, rules))
		}
	}

	return normalized, errs
}

// Complete is the whole-form forward gate: true iff the error map is
// empty and every required field holds a non-empty value. The two checks
// are independent - an untouched required field has no error yet but
// still blocks completion.
func Complete(fields models.Fields, rules Rules) bool {
	_, errs := Section(fields, rules)
	if len(errs) != 0 {
		return false
	}
	for name, rule := range rules {
		if !rule.Required {
			continue
		}
		if fields[name].IsEmpty() {
			return false
		}
	}
	return true
}

func msg(label, rest string) string {
	if label == "" {
		return "this field " + rest
	}
	return label + " " + rest
}

func labelFor(field string, rules Rules) string {
	if r, ok := rules[field]; ok && r.Label != "" {
		return r.Label
	}
	return field
}

// Normalization policy. These are product rules observed across every
// form in the app; they must stay byte-for-byte stable because stored
// drafts round-trip through them.

// normalizeText strips leading whitespace and collapses runs of
// whitespace to a single space.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true // leading whitespace is dropped
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	return strings.TrimRight(b.String(), " ")
}

// normalizeName keeps letters and spaces only, applies the text rules,
// and capitalizes the first letter.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	out := normalizeText(b.String())
	if out == "" {
		return out
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// normalizePhone strips non-digits and drops leading zeros. All of them:
// dropping only one would leave "00x..." converging over two passes
// instead of one.
func normalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}

// normalizeNationalID restricts to digits plus V and uppercases a
// trailing v.
func normalizeNationalID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'v' || r == 'V':
			b.WriteByte('V')
		}
	}
	return b.String()
}

// validNationalID accepts the two issued formats: 9 digits plus V, or 12
// digits.
func validNationalID(s string) bool {
	switch len(s) {
	case 10:
		return s[9] == 'V' && allDigits(s[:9])
	case 12:
		return allDigits(s)
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// normalizeDecimal strips everything but digits and dots, and drops any
// dot after the first.
func normalizeDecimal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			b.WriteByte('.')
			dot = true
		}
	}
	return b.String()
}

// normalizeInteger strips everything but digits.
func normalizeInteger(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
