package params

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag Decode and CheckPrototype read parameter names from.
const TagName = "param"

// Decode copies every set parameter into the fields of target tagged with
// `param:"name"`. Unset parameters leave their field untouched, so callers
// may pre-populate target with fallbacks.
func (s *Set) Decode(target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	structVal = structVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("decode target must point to a struct, got %s", structVal.Kind())
	}
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := tagName(field)
		if name == "" {
			continue
		}

		e := s.entry(name)
		if e == nil {
			return fmt.Errorf("field %s references undeclared parameter %q", field.Name, name)
		}
		if !e.IsSet || e.Value.IsNull() {
			continue
		}

		if err := decodeValue(e.Value, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
	}
	return nil
}

// decodeValue converts val to the type implied by the Go target before
// decoding, so a list(number) parameter decodes into []int as well as
// []float64.
func decodeValue(val cty.Value, target any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, target)
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func tagName(field reflect.StructField) string {
	tag := field.Tag.Get(TagName)
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// CheckPrototype compares the tagged fields of a parameter struct with a
// schema and returns one message per mismatch: fields naming undeclared
// parameters, and fields whose Go type implies a cty type that differs from
// the declared one. Parameters the struct does not mention are allowed.
func CheckPrototype(schema *Schema, prototype any) []string {
	t := reflect.TypeOf(prototype)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("parameter prototype must be a struct, got %T", prototype)}
	}

	var errs []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := tagName(field)
		if name == "" {
			continue
		}

		def, ok := schema.Lookup(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("struct field %s references parameter %q which the schema does not declare", field.Name, name))
			continue
		}
		if def.Type.Equals(cty.DynamicPseudoType) {
			continue
		}

		goType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("parameter %q: could not imply cty type from Go field type %s: %v", name, field.Type, err))
			continue
		}
		if !def.Type.Equals(goType) {
			errs = append(errs, fmt.Sprintf("parameter %q: type mismatch, schema declares '%s' but struct field %s provides '%s'",
				name, def.Type.FriendlyName(), field.Name, goType.FriendlyName()))
		}
	}
	return errs
}
