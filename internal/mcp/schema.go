// Copyright 2025 RentScout Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcp

import (
	"fmt"
	"math"
	"reflect"
)

// FieldType is the closed vocabulary of schema field kinds. Keeping it a
// sum type means an unrecognized tag fails tool construction instead of
// silently disabling validation for that field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInteger
	TypeBoolean
	TypeObject
	TypeArray
)

var fieldTypeNames = map[string]FieldType{
	"string":  TypeString,
	"integer": TypeInteger,
	"boolean": TypeBoolean,
	"object":  TypeObject,
	"array":   TypeArray,
}

func fieldTypeOf(tag string) (FieldType, error) {
	ft, ok := fieldTypeNames[tag]
	if !ok {
		return 0, fmt.Errorf("unknown schema type %q", tag)
	}
	return ft, nil
}

func (ft FieldType) String() string {
	switch ft {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	}
	return "unknown"
}

// Check reports whether v is a member of the field type. Integer accepts
// the Go integer kinds plus whole-valued float64, since encoding/json
// decodes every JSON number to float64; a fractional value still fails.
func (ft FieldType) Check(v any) bool {
	if v == nil {
		return false
	}
	switch ft {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return n == math.Trunc(n)
		case float32:
			return float64(n) == math.Trunc(float64(n))
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeObject:
		return reflect.TypeOf(v).Kind() == reflect.Map
	case TypeArray:
		k := reflect.TypeOf(v).Kind()
		return k == reflect.Slice || k == reflect.Array
	}
	return false
}

// Validate checks params against the schema. Required fields are checked
// first, in declaration order, failing fast on the first missing name.
// Every declared field that is present must match its type. Fields in
// params that the schema does not declare pass through untouched; the
// schema is permissive, not closed.
func (s ToolSchema) Validate(params map[string]any) *Error {
	for _, field := range s.Required {
		if _, ok := params[field]; !ok {
			return &Error{
				Code:    CodeInvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", field),
			}
		}
	}
	for field, prop := range s.Properties {
		v, ok := params[field]
		if !ok {
			continue
		}
		ft, err := fieldTypeOf(prop.Type)
		if err != nil {
			// Unreachable for tools built through NewTool.
			continue
		}
		if !ft.Check(v) {
			return &Error{
				Code:    CodeInvalidParams,
				Message: fmt.Sprintf("parameter %s must be a %s", field, ft),
			}
		}
	}
	return nil
}
