package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag to update golden files during test runs
var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// GoldenConfig holds configuration for golden file operations
type GoldenConfig struct {
	// Dir is the directory where golden files are stored
	Dir string
	// FileExtension is the extension for golden files (default: .golden)
	FileExtension string
}

// DefaultGoldenConfig stores golden files under testdata/golden of the
// package being tested.
func DefaultGoldenConfig() *GoldenConfig {
	return &GoldenConfig{
		Dir:           filepath.Join("testdata", "golden"),
		FileExtension: ".golden",
	}
}

// GoldenTester provides methods for golden file testing
type GoldenTester struct {
	config *GoldenConfig
}

func NewGoldenTester(config *GoldenConfig) *GoldenTester {
	if config == nil {
		config = DefaultGoldenConfig()
	}
	return &GoldenTester{config: config}
}

// AssertJSON compares the indented JSON encoding of data against a golden file
func (gt *GoldenTester) AssertJSON(t *testing.T, name string, data interface{}) {
	t.Helper()

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	require.NoError(t, encoder.Encode(data), "Failed to marshal data to JSON")

	gt.assertBytes(t, name, buf.Bytes())
}

// AssertString compares string data against a golden file
func (gt *GoldenTester) AssertString(t *testing.T, name string, data string) {
	t.Helper()
	gt.assertBytes(t, name, []byte(data))
}

func (gt *GoldenTester) assertBytes(t *testing.T, name string, actual []byte) {
	t.Helper()

	goldenPath := gt.getGoldenPath(name)

	if *updateGolden {
		require.NoError(t, os.MkdirAll(gt.config.Dir, 0o755), "Failed to create golden directory")
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644), "Failed to write golden file: %s", goldenPath)
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "Failed to read golden file: %s (run with -update-golden to create it)", goldenPath)

	if !bytes.Equal(expected, actual) {
		gt.logDifference(t, name, expected, actual)
		assert.Equal(t, string(expected), string(actual),
			"Golden file mismatch for %s. Use -update-golden to update the golden file.", name)
	}
}

func (gt *GoldenTester) getGoldenPath(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return filepath.Join(gt.config.Dir, replacer.Replace(name)+gt.config.FileExtension)
}

// logDifference logs the first differing lines when golden files don't match
func (gt *GoldenTester) logDifference(t *testing.T, name string, expected, actual []byte) {
	t.Helper()

	t.Logf("Golden file mismatch for %s:", name)
	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(string(actual), "\n")

	shown := 0
	for i := 0; i < max(len(expectedLines), len(actualLines)) && shown < 10; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			t.Logf("Line %d differs:", i+1)
			t.Logf("  Expected: %q", e)
			t.Logf("  Actual:   %q", a)
			shown++
		}
	}
}
