package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Fields is the raw construction input for a domain object.
type Fields map[string]any

// Rule validates a single field and returns the possibly transformed value to store.
type Rule func(value any) (any, error)

// FieldRule pairs a field name with its validation rule.
type FieldRule struct {
	Name     string
	Validate Rule
}

// Schema is the ordered set of field rules declared by a domain type.
// It is the single gate every construction input passes through: absent
// declared fields and supplied undeclared fields are both rejected, and
// transforms are applied before the value is stored.
type Schema []FieldRule

// Apply runs the schema against input and returns the validated field values.
func (s Schema) Apply(typeName string, input Fields) (Fields, error) {
	rules := make(map[string]Rule, len(s))
	for _, fr := range s {
		if _, ok := input[fr.Name]; !ok {
			return nil, fmt.Errorf("%w: %s requires field %s", ErrMissingField, typeName, fr.Name)
		}
		rules[fr.Name] = fr.Validate
	}

	out := make(Fields, len(s))
	for name, value := range input {
		rule, ok := rules[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %s", ErrUnknownField, typeName, name)
		}
		validated, err := rule(value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typeName, name, err)
		}
		out[name] = validated
	}

	return out, nil
}

// MatchRule returns a rule that checks a string against the pattern and
// applies transform to it on success.
func MatchRule(pattern string, transform func(string) string) Rule {
	re := regexp.MustCompile(pattern)
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrValidation, value)
		}
		if !re.MatchString(s) {
			return nil, fmt.Errorf("%w: %q does not match %s", ErrValidation, s, pattern)
		}
		if transform != nil {
			s = transform(s)
		}
		return s, nil
	}
}

// FloatRule returns a rule that coerces numeric or string input to float64.
func FloatRule() Rule {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrValidation, v)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("%w: want number, got %T", ErrValidation, value)
		}
	}
}

// TimeAfterRule returns a rule requiring a time strictly after threshold.
func TimeAfterRule(threshold time.Time) Rule {
	return func(value any) (any, error) {
		t, ok := value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: want time.Time, got %T", ErrValidation, value)
		}
		if !t.After(threshold) {
			return nil, fmt.Errorf("%w: time %s is not after %s", ErrValidation, t, threshold)
		}
		return t, nil
	}
}

// PositiveDurationRule returns a rule requiring a positive whole-second
// duration. Durations are stored and exchanged as integer seconds, so
// sub-second precision would not survive a round trip and is rejected here.
func PositiveDurationRule() Rule {
	return func(value any) (any, error) {
		d, ok := value.(time.Duration)
		if !ok {
			return nil, fmt.Errorf("%w: want time.Duration, got %T", ErrValidation, value)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
		}
		if d%time.Second != 0 {
			return nil, fmt.Errorf("%w: duration must be whole seconds", ErrValidation)
		}
		return d, nil
	}
}

// LocationRule returns a rule requiring a non-nil *Location.
func LocationRule() Rule {
	return func(value any) (any, error) {
		loc, ok := value.(*Location)
		if !ok || loc == nil {
			return nil, fmt.Errorf("%w: want *Location, got %T", ErrValidation, value)
		}
		return loc, nil
	}
}
