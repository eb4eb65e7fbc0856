// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/validate"
)

// Encode translates in-memory form state to the wire representation the
// backend expects:
//
//   - Yes/No → 1/0
//   - string lists → a JSON-encoded string
//   - decimal/integer text fields → numeric wire types
//   - unset fields are omitted entirely
//   - fields named in clears are sent as explicit nulls, so stale
//     dependent data on the backend is removed rather than left behind
//
// The section's rule table tells the encoder which text fields carry
// numbers on the wire.
func Encode(fields models.Fields, rules validate.Rules, clears []string) map[string]interface{} {
	wire := make(map[string]interface{}, len(fields)+len(clears))

	for name, v := range fields {
		if !v.IsSet() {
			continue
		}
		switch v.Kind {
		case models.KindYesNo:
			if v.YesNo {
				wire[name] = 1
			} else {
				wire[name] = 0
			}
		case models.KindList:
			encoded, err := json.Marshal(v.List)
			if err != nil {
				continue
			}
			wire[name] = string(encoded)
		case models.KindNumber:
			wire[name] = v.Number
		case models.KindText:
			wire[name] = encodeText(name, v.Text, rules)
		}
	}

	for _, name := range clears {
		wire[name] = nil
	}

	return wire
}

func encodeText(name, text string, rules validate.Rules) interface{} {
	rule, ok := rules[name]
	if !ok {
		return text
	}
	switch rule.Format {
	case validate.FormatDecimal:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	case validate.FormatInteger:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n
		}
	}
	return text
}

// Decode translates a backend data object back into in-memory form
// state, inverting Encode field by field. Fields absent from the wire
// stay unset. Unknown fields decode by their native JSON type.
func Decode(data map[string]interface{}, rules validate.Rules) models.Fields {
	fields := make(models.Fields, len(data))

	for name, raw := range data {
		if raw == nil {
			continue
		}
		rule, known := rules[name]

		switch t := raw.(type) {
		case float64:
			if known && rule.Format == validate.FormatYesNo {
				fields[name] = models.YesNo(t != 0)
				continue
			}
			if known && (rule.Format == validate.FormatDecimal || rule.Format == validate.FormatInteger) {
				fields[name] = models.Text(strconv.FormatFloat(t, 'f', -1, 64))
				continue
			}
			fields[name] = models.Number(t)
		case bool:
			fields[name] = models.YesNo(t)
		case string:
			if known && rule.Format == validate.FormatList {
				var list []string
				if err := json.Unmarshal([]byte(t), &list); err == nil {
					fields[name] = models.List(list)
					continue
				}
			}
			// Backends that predate the rules tables send lists without
			// a declared format; sniff the JSON-array shape.
			if !known && strings.HasPrefix(t, "[") {
				var list []string
				if err := json.Unmarshal([]byte(t), &list); err == nil {
					fields[name] = models.List(list)
					continue
				}
			}
			fields[name] = models.Text(t)
		}
	}

	return fields
}
