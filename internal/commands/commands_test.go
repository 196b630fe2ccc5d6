package commands

import (
	"flag"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
		ok   bool
	}{
		{"empty", "", nil, false},
		{"spaces only", "   ", nil, false},
		{"single token", "undo", []string{"undo"}, true},
		{"flags and args", "grid -pow2 0.25", []string{"grid", "-pow2", "0.25"}, true},
		{"surrounding whitespace", "  spawn cube  ", []string{"spawn", "cube"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.line)
			if ok != tc.ok || !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %v, %v; want %v, %v", tc.line, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExecuteRunsCommandWithFlags(t *testing.T) {
	reg := NewRegistry()
	fs := flag.NewFlagSet("grid", flag.ContinueOnError)
	size := fs.Float64("size", 0, "")
	var rest []string
	reg.Register("grid", "grid settings", fs, func(args []string) error {
		rest = args
		return nil
	})

	if err := reg.Execute([]string{"grid", "-size", "0.5", "extra"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if *size != 0.5 {
		t.Fatalf("size = %v, want 0.5", *size)
	}
	if !reflect.DeepEqual(rest, []string{"extra"}) {
		t.Fatalf("positional args = %v", rest)
	}
}

func TestExecuteErrors(t *testing.T) {
	reg := NewRegistry()
	reg.Register("noop", "does nothing", flag.NewFlagSet("noop", flag.ContinueOnError), func([]string) error { return nil })

	if err := reg.Execute(nil); err == nil {
		t.Fatal("empty args must error")
	}
	if err := reg.Execute([]string{"missing"}); err == nil {
		t.Fatal("unknown command must error")
	}
	if err := reg.Execute([]string{"noop", "-bogus"}); err == nil {
		t.Fatal("bad flag must error")
	}
}

func TestSummariesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register("undo", "undo last edit", flag.NewFlagSet("undo", flag.ContinueOnError), func([]string) error { return nil })
	reg.Register("grid", "grid settings", flag.NewFlagSet("grid", flag.ContinueOnError), func([]string) error { return nil })

	want := []string{"grid - grid settings", "undo - undo last edit"}
	if got := reg.Summaries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("summaries = %v, want %v", got, want)
	}
}
