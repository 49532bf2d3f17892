package stringsx

import (
	"reflect"
	"testing"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"foo", []string{"foo"}},
		{"foo bar", []string{"foo", "bar"}},
		{"  foo\t bar\nbaz  ", []string{"foo", "bar", "baz"}},
		{"a  b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := SplitFields(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitFields(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}
