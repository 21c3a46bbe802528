package particle

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Range
		wantErr bool
	}{
		{name: "fixed", input: "1500", want: Range{1500, 1500}},
		{name: "range", input: "[0.7 0.9]", want: Range{0.7, 0.9}},
		{name: "single value range", input: "[0.3]", want: Range{0.3, 0.3}},
		{name: "leading dot", input: "[.4 .6]", want: Range{0.4, 0.6}},
		{name: "padded", input: "  [ 1  2 ]  ", want: Range{1, 2}},
		{name: "empty", input: "", wantErr: true},
		{name: "inverted", input: "[2 1]", wantErr: true},
		{name: "too many", input: "[1 2 3]", wantErr: true},
		{name: "unterminated", input: "[1 2", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRange(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRangeYAML(t *testing.T) {
	var doc struct {
		A Range `yaml:"a"`
		B Range `yaml:"b"`
		C Range `yaml:"c"`
	}
	src := "a: \"[0.012 0.037]\"\nb: 0.5\nc: [1, 2]\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.A != (Range{0.012, 0.037}) {
		t.Errorf("a = %v", doc.A)
	}
	if doc.B != Fixed(0.5) {
		t.Errorf("b = %v", doc.B)
	}
	if doc.C != (Range{1, 2}) {
		t.Errorf("c = %v", doc.C)
	}

	if err := yaml.Unmarshal([]byte("a: \"[3 1]\"\n"), &doc); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestRangeString(t *testing.T) {
	if got := (Range{0.5, 1.7}).String(); got != "[0.5 1.7]" {
		t.Errorf("String() = %q", got)
	}
	if got := Fixed(2).String(); got != "2" {
		t.Errorf("String() = %q", got)
	}
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestRandomInRange(t *testing.T) {
	if got := RandomInRange(constRand(0.5), 2, 4); got != 3 {
		t.Errorf("RandomInRange = %v, want 3", got)
	}
	if got := RandomInRange(constRand(0.9), 5, 5); got != 5 {
		t.Errorf("degenerate range = %v, want 5", got)
	}
	if got := RandomInRange(constRand(0.9), 6, 5); got != 6 {
		t.Errorf("inverted range = %v, want min", got)
	}
}
