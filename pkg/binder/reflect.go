package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var (
	valuesType = reflect.TypeOf(url.Values{})
	batchType  = reflect.TypeOf([]url.Values{})
)

// bindValues copies values into the tagName-tagged fields of the struct v
// points to. Only tagged fields are touched; absent keys leave the field at
// its zero value.
func bindValues(v any, tagName string, values url.Values, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}

	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		switch {
		case name == "" || name == "-":
			continue
		case name == "*":
			if sf.Type != valuesType {
				return fmt.Errorf("%w: field %s: %q tag needs url.Values", bindErr, sf.Name, "*")
			}
			mergeValues(field, values)
			continue
		}

		fieldValues, ok := values[name]
		if !ok || len(fieldValues) == 0 {
			continue
		}
		if err := setField(field, fieldValues[0]); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

// bindBatch sets the `tagName:"*"` field of type []url.Values to batch.
func bindBatch(v any, tagName string, batch []url.Values, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		if name != "*" || !rv.Field(i).CanSet() {
			continue
		}
		if sf.Type != batchType {
			return fmt.Errorf("%w: field %s: %q tag needs []url.Values", bindErr, sf.Name, "*")
		}
		rv.Field(i).Set(reflect.ValueOf(batch))
		return nil
	}
	return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
}

// mergeValues lets several binders contribute to one url.Values field.
func mergeValues(field reflect.Value, values url.Values) {
	if field.IsNil() {
		field.Set(reflect.ValueOf(url.Values{}))
	}
	dst := field.Interface().(url.Values)
	for k, vs := range values {
		dst[k] = append(dst[k], vs...)
	}
}

func setField(field reflect.Value, value string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), value)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "on", "yes":
			field.SetBool(true)
		case "false", "0", "off", "no", "":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", value)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}
