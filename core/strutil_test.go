package core

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestSplitString(t *testing.T) {
	tests := []struct {
		data     string
		sep      byte
		index    int
		expected string
	}{
		{"G1 X10 Y20", ' ', 0, "G1"},
		{"G1 X10 Y20", ' ', 1, "X10"},
		{"G1 X10 Y20", ' ', 2, "Y20"},
		{"G1 X10 Y20", ' ', 5, ""},
		{"", ',', 0, ""},
		{"", ',', 1, ""},
		{"abc", ',', 0, "abc"},
		{"abc", ',', 1, ""},
		{"a,", ',', 0, "a,"},
		{"a,", ',', 1, ""},
		{"a,", ',', 2, ""},
		{",", ',', 0, ","},
		{",,", ',', 0, ""},
		{",,", ',', 1, ","},
		{"one,two,,four,", ',', 3, "four,"},
		{"one,two,,four,", ',', 4, ""},
		{",b", ',', 0, ""},
		{",b", ',', 1, "b"},
		{"a,,c", ',', 1, ""},
		{"a,,c", ',', 2, "c"},
		{"STEP 200", ' ', -1, ""},
	}

	for _, test := range tests {
		got := SplitString(test.data, test.sep, test.index)
		if got != test.expected {
			t.Errorf("SplitString(%q, %q, %d) = %q, expected %q",
				test.data, test.sep, test.index, got, test.expected)
		}
	}
}

func TestSplitStringMatchesFields(t *testing.T) {
	// Without a trailing separator every field comes back exactly;
	// one past the end is empty
	inputs := []string{"x", "x,y", "x,y,z", ",y", "one,two,,four"}

	for _, input := range inputs {
		fields := strings.Split(input, ",")
		for i, want := range fields {
			if got := SplitString(input, ',', i); got != want {
				t.Errorf("SplitString(%q, ',', %d) = %q, expected %q", input, i, got, want)
			}
		}
		if got := SplitString(input, ',', len(fields)); got != "" {
			t.Errorf("SplitString(%q, ',', %d) = %q, expected empty", input, len(fields), got)
		}
	}
}

func TestSplitStringTrailingSeparator(t *testing.T) {
	// The last field keeps the trailing separator and no empty field follows it
	inputs := []string{"x,", "x,y,", "G1 X10 "}

	for _, input := range inputs {
		sep := input[len(input)-1]
		fields := strings.Split(input[:len(input)-1], string(sep))
		lastIdx := len(fields) - 1

		if got := SplitString(input, sep, lastIdx); got != fields[lastIdx]+string(sep) {
			t.Errorf("SplitString(%q, %q, %d) = %q, expected %q",
				input, sep, lastIdx, got, fields[lastIdx]+string(sep))
		}
		if got := SplitString(input, sep, lastIdx+1); got != "" {
			t.Errorf("SplitString(%q, %q, %d) = %q, expected empty", input, sep, lastIdx+1, got)
		}
	}
}

func TestItoa(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{200, "200"},
		{-200, "-200"},
		{math.MaxInt32, "2147483647"},
		{math.MinInt32, "-2147483648"},
		{math.MinInt, strconv.Itoa(math.MinInt)},
	}

	for _, test := range tests {
		if got := itoa(test.n); got != test.expected {
			t.Errorf("itoa(%d) = %q, expected %q", test.n, got, test.expected)
		}
	}
}
