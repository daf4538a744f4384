package format

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/pratt/expr/hash"
	"github.com/dhamidi/pratt/expr/parser"
)

var testdataDir string
var testFilter string

func init() {
	flag.StringVar(&testdataDir, "testdata", "testdata", "directory containing .expr test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testdata prints every expression in testdata/*.expr as
// source, parses the output again and compares the trees.
// Each file becomes a subtest: go test -run TestRoundTrip_Testdata/precedence
func TestRoundTrip_Testdata(t *testing.T) {
	var files []string
	err := filepath.WalkDir(testdataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".expr") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testdata directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .expr files found in %s", testdataDir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(testdataDir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".expr")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	defer f.Close()

	grammar := parser.WithGrammar(parser.ExtendedGrammar())
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		orig, err := parser.Parse(line, grammar)
		if err != nil {
			t.Errorf("%s:%d: original does not parse: %v", filename, lineNo, err)
			continue
		}

		printed := Source(orig)
		again, err := parser.Parse(printed, grammar)
		if err != nil {
			t.Errorf("%s:%d: printed %q does not parse: %v", filename, lineNo, printed, err)
			continue
		}

		if !parser.Equal(orig, again) {
			t.Errorf("%s:%d: tree changed after round trip\n  input:   %s\n  printed: %s\n  before:  %s\n  after:   %s",
				filename, lineNo, line, printed, parser.String(orig), parser.String(again))
			continue
		}
		if hash.Sum(orig) != hash.Sum(again) {
			t.Errorf("%s:%d: hash changed after round trip", filename, lineNo)
		}
		if reprinted := Source(again); reprinted != printed {
			t.Errorf("%s:%d: printing is not stable: %q then %q", filename, lineNo, printed, reprinted)
		}

		// Lines without grouping must print back into the default grammar.
		plain, err := parser.Parse(line)
		if err != nil {
			continue
		}
		reparsed, err := parser.Parse(Source(plain))
		if err != nil {
			t.Errorf("%s:%d: printed %q does not parse under the default grammar: %v", filename, lineNo, Source(plain), err)
			continue
		}
		if !parser.Equal(plain, reparsed) {
			t.Errorf("%s:%d: tree changed under the default grammar: %s then %s",
				filename, lineNo, parser.String(plain), parser.String(reparsed))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
}
