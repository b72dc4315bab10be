package forms

import (
	"fmt"

	"obras-backend/pkg/brl"
)

// FieldKind selects the equality rule used when diffing a tracked field.
type FieldKind int

const (
	// KindDefault compares values with strict equality.
	KindDefault FieldKind = iota
	// KindDate compares ISO date strings, already normalized upstream.
	KindDate
	// KindMoney normalizes both sides as currency and compares with a
	// small tolerance.
	KindMoney
)

// moneyTolerance is the largest absolute difference still considered equal.
const moneyTolerance = 0.0001

// TrackedField names one field watched for edits, with its equality rule.
type TrackedField struct {
	Name string
	Kind FieldKind
}

// Change is one field-level difference destined for a partial update call.
type Change struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// ComputeChangeSet diffs edited against original over the tracked fields,
// preserving the tracked order. An empty result means there is nothing to
// submit and the caller must skip the upstream call entirely.
func ComputeChangeSet(original, edited Record, tracked []TrackedField) []Change {
	var changes []Change
	for _, field := range tracked {
		before, after := original[field.Name], edited[field.Name]
		if fieldChanged(field.Kind, before, after) {
			changes = append(changes, Change{Field: field.Name, Value: after})
		}
	}
	return changes
}

func fieldChanged(kind FieldKind, before, after interface{}) bool {
	switch kind {
	case KindDate:
		return asString(before) != asString(after)
	case KindMoney:
		a, okA := brl.Normalize(before)
		b, okB := brl.Normalize(after)
		if !okA || !okB {
			// An unreadable side is treated as changed to force an update.
			return true
		}
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		return diff > moneyTolerance
	default:
		return before != after
	}
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
