package main

import "testing"

func TestOutputPath(t *testing.T) {
	cases := []struct {
		name      string
		useStdin  bool
		useStdout bool
		args      []string
		want      string
	}{
		{"positional output", false, false, []string{"in.json", "out.json"}, "out.json"},
		{"no output argument", false, false, []string{"in.json"}, ""},
		{"stdin ignores positionals", true, false, []string{"out.json"}, ""},
		{"stdout wins over positional", false, true, []string{"in.json", "out.json"}, ""},
	}

	for _, c := range cases {
		if got := outputPath(c.useStdin, c.useStdout, c.args); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}
