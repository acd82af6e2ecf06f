package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/jsonedit/value"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want value.Value
	}{
		{"true", true},
		{"false", false},
		{"null", nil},
		{"3", 3.0},
		{"-1.5e3", -1500.0},
		{`"3"`, "3"},
		{`'true'`, "true"},
		{`"`, `"`},
		{`"mixed'`, `"mixed'`},
		{"hello world", "hello world"},
		{"", ""},
		{"Inf", "Inf"},
		{"NaN", "NaN"},
		{"True", "True"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLiteral(tt.in))
		})
	}
}

func TestFormatLiteralReadsBack(t *testing.T) {
	for _, v := range []value.Value{nil, true, 2.5, "plain", "true", "42", `"quoted"`, ""} {
		assert.Equal(t, v, ParseLiteral(FormatLiteral(v)), "value %#v", v)
	}
}
