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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTypeCheck(t *testing.T) {
	cases := []struct {
		name string
		ft   FieldType
		v    any
		want bool
	}{
		{"string ok", TypeString, "hello", true},
		{"string not int", TypeString, 5, false},
		{"integer native", TypeInteger, 42, true},
		{"integer int64", TypeInteger, int64(42), true},
		{"integer whole float64 from json", TypeInteger, float64(90), true},
		{"integer fractional float64", TypeInteger, 90.5, false},
		{"integer not string", TypeInteger, "90", false},
		{"boolean ok", TypeBoolean, true, true},
		{"boolean not int", TypeBoolean, 1, false},
		{"object generic map", TypeObject, map[string]any{"a": 1}, true},
		{"object typed map", TypeObject, map[string]string{"a": "b"}, true},
		{"object not slice", TypeObject, []any{}, false},
		{"array generic slice", TypeArray, []any{1, 2}, true},
		{"array typed slice", TypeArray, []string{"a"}, true},
		{"array not map", TypeArray, map[string]any{}, false},
		{"nil never matches", TypeString, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ft.Check(tc.v))
		})
	}
}

func TestValidateRequiredOrderFailFast(t *testing.T) {
	schema := ToolSchema{
		Type: "object",
		Properties: map[string]Property{
			"a": {Type: "string"},
			"b": {Type: "string"},
		},
		Required: []string{"a", "b"},
	}

	err := schema.Validate(map[string]any{})
	assert.NotNil(t, err)
	assert.Equal(t, CodeInvalidParams, err.Code)
	assert.Contains(t, err.Message, "a")

	err = schema.Validate(map[string]any{"a": "present"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "b")

	assert.Nil(t, schema.Validate(map[string]any{"a": "x", "b": "y"}))
}

func TestValidateNamesOffendingFieldAndType(t *testing.T) {
	schema := ToolSchema{
		Type: "object",
		Properties: map[string]Property{
			"duration_minutes": {Type: "integer"},
		},
	}

	err := schema.Validate(map[string]any{"duration_minutes": "ninety"})
	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "duration_minutes")
	assert.Contains(t, err.Message, "integer")
}
