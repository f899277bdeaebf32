package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/fossabot/analyse-control/ast"
)

// parseExpect decodes expect.txt's trivial "key=value" lines into a map.
func parseExpect(data []byte) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

func fileByName(a *txtar.Archive, name string) []byte {
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

// TestTxtarFixtures drives every archive under testdata/ through Analyse,
// checking the assertion its expect.txt describes. Keeping each fixture's
// AST and expectation in one archive file makes adding a new table-driven
// case a matter of dropping in another .txtar rather than hand-writing a Go
// literal.
func TestTxtarFixtures(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no .txtar fixtures found under testdata/")
	}

	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			arc := txtar.Parse(raw)

			astJSON := fileByName(arc, "ast.json")
			if astJSON == nil {
				t.Fatalf("%s: missing ast.json", path)
			}
			expectTxt := fileByName(arc, "expect.txt")
			if expectTxt == nil {
				t.Fatalf("%s: missing expect.txt", path)
			}
			expect := parseExpect(expectTxt)

			var root ast.Node
			if err := json.Unmarshal(astJSON, &root); err != nil {
				t.Fatalf("%s: unmarshal ast.json: %v", path, err)
			}

			g, err := Analyse(&root)
			if err != nil {
				t.Fatalf("%s: Analyse: %v", path, err)
			}

			switch expect["kind"] {
			case "linear":
				want, err := strconv.Atoi(expect["length"])
				if err != nil {
					t.Fatalf("%s: bad length in expect.txt: %v", path, err)
				}
				chain := linearPath(t, g.StartOfFlow())
				if len(chain) != want {
					t.Errorf("%s: linear chain has %d events, want %d", path, len(chain), want)
				}
				if chain[len(chain)-1].ID() != g.EndOfFlow().ID() {
					t.Errorf("%s: linear chain does not end at EndOfFlow", path)
				}
			case "fork":
				testName := expect["testName"]
				wantBranches, err := strconv.Atoi(expect["branchCount"])
				if err != nil {
					t.Fatalf("%s: bad branchCount in expect.txt: %v", path, err)
				}
				testExit := one1(t, findEvents(g, ast.Identifier, &exitPhase, testName), testName+" exit")
				if got := len(testExit.ForwardFlows()); got != wantBranches {
					t.Errorf("%s: %s's Exit has %d forward edges, want %d", path, testName, got, wantBranches)
				}
			default:
				t.Fatalf("%s: unknown expect kind %q", path, expect["kind"])
			}
		})
	}
}
