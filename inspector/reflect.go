package inspector

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Edit errors. SetField wraps one of these; callers match with errors.Is.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotEditable  = errors.New("field is not editable")
	ErrInvalidValue = errors.New("invalid value")
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name     string
	Value    any
	Widget   Widget
	Editable bool
	Options  map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,flag][,option:value...]"`
// Examples:
//
//	`inspect:"bar"`
//	`inspect:"bar,max:2,edit"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
//
// The only flag is "edit", which marks the field as writable from the panel.
func ParseTag(tag string) (Widget, bool, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, false, options
	}

	parts := strings.Split(tag, ",")
	widgetStr := strings.TrimSpace(parts[0])

	var widget Widget
	switch widgetStr {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	editable := false
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "edit" {
			editable = true
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, editable, options
}

// ExtractFields uses reflection to extract all fields from a component.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		// Skip unexported fields
		if !sf.IsExported() {
			continue
		}

		widget, editable, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}

		// Auto-detect widget if not specified
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:     sf.Name,
			Value:    fv.Interface(),
			Widget:   widget,
			Editable: editable && isFloat(fv.Kind()),
			Options:  options,
		})
	}

	return fields
}

// SetField parses raw as a finite number and stores it in the named
// editable field of the struct ptr points to. Field names match either the
// Go name or its lower-camel form ("colorHue" for ColorHue). On error the
// struct is left unchanged.
func SetField(ptr any, name, raw string) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("set %s: %w: target is not a struct pointer", name, ErrUnknownField)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || !matchesName(sf.Name, name) {
			continue
		}
		fv := v.Field(i)
		_, editable, options := ParseTag(sf.Tag.Get("inspect"))
		if !editable || !isFloat(fv.Kind()) {
			return fmt.Errorf("set %s: %w", name, ErrNotEditable)
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("set %s to %q: %w", name, raw, ErrInvalidValue)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("set %s to %q: %w: not finite", name, raw, ErrInvalidValue)
		}
		if maxStr, ok := options["max"]; ok {
			if limit, err := strconv.ParseFloat(maxStr, 64); err == nil && (f < 0 || f > limit) {
				return fmt.Errorf("set %s to %q: %w: outside [0, %s]", name, raw, ErrInvalidValue, maxStr)
			}
		}
		fv.SetFloat(f)
		return nil
	}
	return fmt.Errorf("set %s: %w", name, ErrUnknownField)
}

func matchesName(goName, name string) bool {
	return goName == name || lowerCamel(goName) == name
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float64 {
	if maxStr, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			return max
		}
	}
	return 1.0
}

// GetFloatValue extracts a float64 from numeric field values.
func GetFloatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
