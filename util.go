package goswipe

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

const tagName = "swiper"

// TypeDeref returns the underlying type if the given type is a pointer.
func TypeDeref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// indirect walks down v allocating pointers as needed until it reaches a
// non-pointer value.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(TypeDeref(v.Type())))
		}
		v = v.Elem()
	}
	return v
}

// decodeFlat copies the members of a parsed loose object into the fields of
// the struct dst points to, matching members by the fields' swiper tags.
// Fields without a matching member keep their current value, which is how
// resolvers supply defaults.
func decodeFlat(obj map[string]any, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("goswipe: decode target must be a non-nil pointer, got %T", dst)
	}
	v = indirect(v)
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("goswipe: decode target must point to a struct, got %T", dst)
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get(tagName)
		if name == "" || name == "-" {
			continue
		}
		raw, ok := obj[name]
		if !ok || raw == nil {
			continue
		}
		if err := setField(indirect(v.Field(i)), raw); err != nil {
			return fmt.Errorf("goswipe: field %s: %w", name, err)
		}
	}
	return nil
}

func setField(v reflect.Value, raw any) error {
	switch v.Kind() {
	case reflect.String:
		switch r := raw.(type) {
		case string:
			v.SetString(r)
		case float64:
			v.SetString(strconv.FormatFloat(r, 'f', -1, 64))
		case bool:
			v.SetString(strconv.FormatBool(r))
		default:
			return fmt.Errorf("cannot use %T as string", raw)
		}
	case reflect.Bool:
		switch r := raw.(type) {
		case bool:
			v.SetBool(r)
		case string:
			b, err := strconv.ParseBool(r)
			if err != nil {
				return err
			}
			v.SetBool(b)
		default:
			return fmt.Errorf("cannot use %T as bool", raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, err := asFloat(raw)
		if err != nil {
			return err
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("%v is not an integer", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 || v.OverflowInt(int64(f)) {
			return fmt.Errorf("%v is out of range", f)
		}
		v.SetInt(int64(f))
	case reflect.Float32, reflect.Float64:
		f, err := asFloat(raw)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", v.Kind())
	}
	return nil
}

func asFloat(raw any) (float64, error) {
	switch r := raw.(type) {
	case float64:
		return r, nil
	case string:
		if f, ok := toNumber(r); ok {
			return f, nil
		}
		return 0, fmt.Errorf("%q is not a number", r)
	default:
		return 0, fmt.Errorf("cannot use %T as number", raw)
	}
}

// encodeFlat is the inverse of decodeFlat: it turns a tagged struct into a
// Config keyed by the swiper tags. Numeric fields are stored as float64 so
// that compiled and resolved values share one representation.
func encodeFlat(src any) Config {
	v := reflect.Indirect(reflect.ValueOf(src))
	t := v.Type()
	out := make(Config, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get(tagName)
		if name == "" || name == "-" {
			continue
		}
		f := reflect.Indirect(v.Field(i))
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[name] = float64(f.Int())
		case reflect.Float32, reflect.Float64:
			out[name] = f.Float()
		case reflect.Invalid:
			out[name] = nil
		default:
			out[name] = f.Interface()
		}
	}
	return out
}
