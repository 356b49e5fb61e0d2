package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLToJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keys keep source order",
			input:    "zeta: 1\nalpha: 2\nmid: 3\n",
			expected: `{"zeta":1,"alpha":2,"mid":3}`,
		},
		{
			name:     "scalars are typed",
			input:    "s: hola\ni: 7\nf: 1.5\nb: true\nn: null\nq: \"42\"\n",
			expected: `{"s":"hola","i":7,"f":1.5,"b":true,"n":null,"q":"42"}`,
		},
		{
			name:     "dates stay strings",
			input:    "fecha: 2025-04-15\n",
			expected: `{"fecha":"2025-04-15"}`,
		},
		{
			name:     "sequences and nesting",
			input:    "items:\n  - uno\n  - {a: 1, b: [x, y]}\n",
			expected: `{"items":["uno",{"a":1,"b":["x","y"]}]}`,
		},
		{
			name:     "aliases are expanded",
			input:    "base: &b {color: red}\ncopy: *b\n",
			expected: `{"base":{"color":"red"},"copy":{"color":"red"}}`,
		},
		{
			name:     "empty document",
			input:    "",
			expected: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := yamlToJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestYAMLToJSON_Invalid(t *testing.T) {
	_, err := yamlToJSON([]byte("a: [1, 2\n"))
	assert.Error(t, err)
}
