// This file is part of Retroprof.
//
// Retroprof is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroprof is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroprof.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/retroprof/test"
)

const testSymbols = `# start end name file line scope
0x100 0x200 main main.c 1 g
0x200 0x300 foo foo.c 10 g
0x300 0x400 bar
`

// 0x900 is outside of every symbol
const testSamples = `0x110;0x210 2
0x110;0x310
0x900 1
`

// writeInputs creates the symbols and samples files and returns the flags
// that refer to them.
func writeInputs(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()

	syms := filepath.Join(dir, "test.symbols")
	test.DemandSuccess(t, os.WriteFile(syms, []byte(testSymbols), 0o644))

	samples := filepath.Join(dir, "test.stacks")
	test.DemandSuccess(t, os.WriteFile(samples, []byte(testSamples), 0o644))

	return dir, []string{
		"--symbols", syms,
		"--samples", samples,
		"--prefs", filepath.Join(dir, "prefs.yaml"),
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	out := &test.CompareWriter{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	_, flags := writeInputs(t)

	out, err := execute(t, append([]string{"summary", "--check"}, flags...)...)
	test.DemandSuccess(t, err)

	lines := strings.Split(out, "\n")
	test.DemandSuccess(t, len(lines) > 12, out)

	test.ExpectEquality(t, lines[0], "test.stacks: total weight 4, 5 nodes, depth 2")
	test.ExpectEquality(t, lines[1], "")
	test.ExpectEquality(t, strings.Join(lines[2:7], "\n"), `<root> 4 (0)
  main 3 (0)
    foo 2 (2)
    bar 1 (1)
  <unresolved> 1 (1)`)

	test.ExpectEquality(t, strings.Join(strings.Fields(lines[8]), " "), "self total function")
	test.ExpectEquality(t, strings.Join(strings.Fields(lines[9]), " "), "2 50.00% 2 50.00% foo (foo.c:10)")
	test.ExpectEquality(t, strings.Join(strings.Fields(lines[10]), " "), "1 25.00% 1 25.00% <unresolved>")
	test.ExpectEquality(t, strings.Join(strings.Fields(lines[11]), " "), "1 25.00% 1 25.00% bar")
	test.ExpectEquality(t, strings.Join(strings.Fields(lines[12]), " "), "0 0.00% 3 75.00% main (main.c:1)")
}

func TestSummaryLimits(t *testing.T) {
	_, flags := writeInputs(t)

	out, err := execute(t, append([]string{"summary", "--depth", "1", "--top", "1"}, flags...)...)
	test.DemandSuccess(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	test.ExpectEquality(t, len(lines), 8, out)
	test.ExpectEquality(t, lines[2], "<root> 4 (0)")
	test.ExpectEquality(t, lines[3], "  main 3 (0)")
	test.ExpectEquality(t, lines[4], "  <unresolved> 1 (1)")
	test.ExpectSuccess(t, strings.HasSuffix(lines[7], "foo (foo.c:10)"))
}

func TestSummaryWithoutSymbols(t *testing.T) {
	_, flags := writeInputs(t)

	// drop the --symbols flag. every address is unresolved and so a stack of
	// two addresses is a recursive call
	out, err := execute(t, append([]string{"summary", "--top", "0"}, flags[2:]...)...)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(out, "test.stacks: total weight 4, 3 nodes, depth 2\n"), out)
	test.ExpectSuccess(t, strings.Contains(out, "  <unresolved> 4 (1)\n    <unresolved> 3 (3)\n"), out)
}

func TestInputErrors(t *testing.T) {
	dir, flags := writeInputs(t)

	_, err := execute(t, append([]string{"summary", "--format", "csv"}, flags...)...)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "unsupported samples format"))

	_, err = execute(t, "summary", "--prefs", filepath.Join(dir, "prefs.yaml"))
	test.ExpectFailure(t, err)

	_, err = execute(t, "summary",
		"--samples", filepath.Join(dir, "missing.stacks"),
		"--prefs", filepath.Join(dir, "prefs.yaml"))
	test.ExpectFailure(t, err)

	bad := filepath.Join(dir, "bad.stacks")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("0x110 1\nnot-an-address 1\n"), 0o644))
	_, err = execute(t, "summary", "--samples", bad, "--prefs", filepath.Join(dir, "prefs.yaml"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "bad.stacks"))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "line 2"))

	rules := filepath.Join(dir, "rules.yaml")
	test.DemandSuccess(t, os.WriteFile(rules, []byte("rules:\n  - category: nonsense\n"), 0o644))
	_, err = execute(t, append([]string{"mcp", "--rules", rules}, flags...)...)
	test.ExpectFailure(t, err)
}

func TestMemviz(t *testing.T) {
	dir, flags := writeInputs(t)
	output := filepath.Join(dir, "tree.dot")

	out, err := execute(t, append([]string{"memviz", "-o", output}, flags...)...)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out, output+"\n")

	data, err := os.ReadFile(output)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(data), "digraph"))
}
