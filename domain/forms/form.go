package forms

import "strings"

// Record maps field names to their current raw values. It is the in-flight
// state of one form session; it carries no identity and is discarded after
// submission.
type Record map[string]interface{}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String reads a field as a string, tolerating absent or non-string values.
func (r Record) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// FieldValidator validates one field. The full record is passed in so
// cross-field rules, such as date-range ordering, can read sibling values.
type FieldValidator func(value interface{}, record Record) ValidationResult

// StringValidator adapts a plain string validator into a FieldValidator.
func StringValidator(fn func(string) ValidationResult) FieldValidator {
	return func(value interface{}, _ Record) ValidationResult {
		s, _ := value.(string)
		return fn(s)
	}
}

type fieldSpec struct {
	name       string
	required   bool
	validator  FieldValidator
	dependents []string
}

// Form holds the values and validation results of one form. All mutation
// goes through SetField, which revalidates synchronously, so a result never
// lags behind the value it describes.
type Form struct {
	order   []string
	fields  map[string]*fieldSpec
	values  Record
	results map[string]ValidationResult
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{
		fields:  make(map[string]*fieldSpec),
		values:  make(Record),
		results: make(map[string]ValidationResult),
	}
}

// AddField registers a field in declaration order. A nil validator means the
// field is free-form. Required fields must be non-empty for the form to be
// valid even before their validator runs.
func (f *Form) AddField(name string, required bool, validator FieldValidator) *Form {
	f.order = append(f.order, name)
	f.fields[name] = &fieldSpec{name: name, required: required, validator: validator}
	return f
}

// DependsOn declares that changing field name must also revalidate the given
// dependents. Used for cross-field rules: editing the start date revalidates
// the completion dates.
func (f *Form) DependsOn(name string, dependents ...string) *Form {
	if spec, ok := f.fields[name]; ok {
		spec.dependents = append(spec.dependents, dependents...)
	}
	return f
}

// Seed populates the form from an existing record for edit mode, without
// running validators. Untouched fields show no stale messages.
func (f *Form) Seed(record Record) {
	for _, name := range f.order {
		if v, ok := record[name]; ok {
			f.values[name] = v
		}
	}
}

// SetField is the single mutation entry point: it stores the value and
// recomputes validation for the field and its declared dependents before
// returning.
func (f *Form) SetField(name string, value interface{}) ValidationResult {
	spec, ok := f.fields[name]
	if !ok {
		return valid()
	}

	f.values[name] = value
	result := f.validateField(spec)
	f.results[name] = result

	for _, dep := range spec.dependents {
		if depSpec, ok := f.fields[dep]; ok {
			if _, touched := f.values[dep]; touched {
				f.results[dep] = f.validateField(depSpec)
			}
		}
	}
	return result
}

func (f *Form) validateField(spec *fieldSpec) ValidationResult {
	value := f.values[spec.name]
	if spec.required && isEmpty(value) {
		return invalid(MsgRequired)
	}
	if spec.validator == nil {
		return valid()
	}
	return spec.validator(value, f.values)
}

// Value returns the current value for a field.
func (f *Form) Value(name string) interface{} {
	return f.values[name]
}

// Result returns the latest validation result for a field.
func (f *Form) Result(name string) ValidationResult {
	return f.results[name]
}

// Values returns a copy of the current record.
func (f *Form) Values() Record {
	return f.values.Clone()
}

// IsValid reports whether every required field is present and every computed
// result is valid. Fields never touched count as invalid when required.
func (f *Form) IsValid() bool {
	for _, name := range f.order {
		spec := f.fields[name]
		value, touched := f.values[name]
		if spec.required && (!touched || isEmpty(value)) {
			return false
		}
		if touched {
			if result, ok := f.results[name]; ok && !result.IsValid {
				return false
			}
		}
	}
	return true
}

// Validate runs every validator against the current values, recording the
// results. Used at submit time to catch required fields the user never
// touched.
func (f *Form) Validate() bool {
	ok := true
	for _, name := range f.order {
		result := f.validateField(f.fields[name])
		f.results[name] = result
		if !result.IsValid {
			ok = false
		}
	}
	return ok
}

// Errors returns the messages of all invalid fields, keyed by field name.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for name, result := range f.results {
		if !result.IsValid {
			out[name] = result.Message
		}
	}
	return out
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}
