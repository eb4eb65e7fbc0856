package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Section names for the farm inspection wizard, in wizard order.
const (
	SectionPersonalInfo    = "personal_info"
	SectionIDProof         = "id_proof"
	SectionFinanceInfo     = "finance_info"
	SectionLandInfo        = "land_info"
	SectionInvestmentInfo  = "investment_info"
	SectionCultivationInfo = "cultivation_info"
	SectionCroppingSystems = "cropping_systems"
	SectionProfitRisk      = "profit_risk"
	SectionEconomical      = "economical"
	SectionLabour          = "labour"
	SectionHarvestStorage  = "harvest_storage"
)

// Kind discriminates the variants of a FieldValue.
type Kind int

const (
	KindUnset Kind = iota
	KindText
	KindNumber
	KindYesNo
	KindList
)

// FieldValue is one form field's in-memory value. The zero value is Unset,
// which is distinct from an empty string or a "No" answer.
type FieldValue struct {
	Kind   Kind
	Text   string
	Number float64
	YesNo  bool
	List   []string
}

func Text(s string) FieldValue    { return FieldValue{Kind: KindText, Text: s} }
func Number(f float64) FieldValue { return FieldValue{Kind: KindNumber, Number: f} }
func YesNo(b bool) FieldValue     { return FieldValue{Kind: KindYesNo, YesNo: b} }
func List(ss []string) FieldValue { return FieldValue{Kind: KindList, List: ss} }
func Unset() FieldValue           { return FieldValue{} }

// IsSet reports whether the field holds a value.
func (v FieldValue) IsSet() bool { return v.Kind != KindUnset }

// IsEmpty reports whether the field is unset or holds a value a required
// field may not have (blank text, empty list). Numbers and Yes/No answers
// are never empty once set.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case KindUnset:
		return true
	case KindText:
		return v.Text == ""
	case KindList:
		return len(v.List) == 0
	default:
		return false
	}
}

// Equal compares two field values, including list contents.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Number == o.Number
	case KindYesNo:
		return v.YesNo == o.YesNo
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != o.List[i] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the value as its native JSON type. Unset encodes as
// null; callers that want omit-when-unset filter before encoding.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindYesNo:
		return json.Marshal(v.YesNo)
	case KindList:
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a native JSON value into the matching variant.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = FieldValue{}
	case string:
		*v = Text(t)
	case float64:
		*v = Number(t)
	case bool:
		*v = YesNo(t)
	case []interface{}:
		list := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("list field element is %T, want string", e)
			}
			list = append(list, s)
		}
		*v = List(list)
	default:
		return fmt.Errorf("unsupported field value type %T", raw)
	}
	return nil
}

// Fields is one section's in-memory form state.
type Fields map[string]FieldValue

// Clone returns a deep copy, so controller snapshots cannot alias edits.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if v.Kind == KindList {
			v.List = append([]string(nil), v.List...)
		}
		out[k] = v
	}
	return out
}

// DraftRecord is one locally persisted section draft. SyncedAt is nil when
// the draft has never been accepted by the backend.
type DraftRecord struct {
	RequestID int64      `json:"request_id"`
	Section   string     `json:"section"`
	Fields    Fields     `json:"fields"`
	UpdatedAt time.Time  `json:"updated_at"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`
}

// Dirty reports whether the draft has edits newer than its last
// successful remote save.
func (d DraftRecord) Dirty() bool {
	return d.SyncedAt == nil || d.SyncedAt.Before(d.UpdatedAt)
}

// RequestContext carries the wizard's identity. It is assigned once at
// wizard entry and threaded unchanged through every section transition.
type RequestContext struct {
	RequestID     int64
	RequestNumber string
}

// Valid reports whether the context can attribute a section mutation.
func (rc RequestContext) Valid() bool {
	return rc.RequestID > 0 && rc.RequestNumber != ""
}

// Wire envelope types

// SaveResponse is the uniform response to POST /inspection/save.
type SaveResponse struct {
	Success   bool   `json:"success"`
	Operation string `json:"operation,omitempty"` // "insert" or "update"
	Message   string `json:"message,omitempty"`
}

// LoadResponse is the uniform response to GET /inspection/get.
type LoadResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Officer is the authenticated user's profile, held by the session.
type Officer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	District string `json:"district"`
	Phone    string `json:"phone"`
}

// ErrorResponse mirrors the backend's error body shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
