/*
Package ignore loads the .insightsIgnore rules file of a project root.

The file holds one rule per line:

	// comment lines contain a double slash anywhere
	node_modules
	*.log
	@exploreTimeout=9000

Lines starting with '@' assign a setting, every other non-empty line is an
exclusion rule: an exact file or directory name, or a "*.ext" wildcard
compared against everything after the first dot of a name. When the file is
missing a built-in default list is used instead.
*/
package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrConfigExists is returned by WriteDefault when the rules file is present.
var ErrConfigExists = errors.New("insightsIgnore file already exist")

// Rules is the outcome of loading a root's rules for one scan.
type Rules struct {
	Patterns *PatternSet
	Settings Settings

	// Warnings carries one message per rejected setting line.
	Warnings []string

	// FromFile is true when the rules came from a rules file.
	FromFile bool
}

// Ignored reports whether a node called name must be skipped.
func (r *Rules) Ignored(name string) (Pattern, bool) {
	if r == nil {
		return Pattern{}, false
	}
	return r.Patterns.Match(name)
}

// Defaults returns the rules used when a root has no rules file.
func Defaults() *Rules {
	patterns := NewPatternSet(basePatterns...)
	for _, p := range defaultPatterns {
		patterns.Add(p)
	}
	return &Rules{Patterns: patterns}
}

// Path returns the rules file location for root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the rules of root. A missing file is not an error.
func Load(fs afero.Fs, root string) (*Rules, error) {
	path := Path(root)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rules, nil
}

// Parse builds rules from the content of a rules file.
func Parse(data []byte) (*Rules, error) {
	rules := &Rules{
		Patterns: NewPatternSet(basePatterns...),
		FromFile: true,
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	// a single line may be as long as the whole file
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.Contains(line, "//") {
			continue
		}

		if !strings.HasPrefix(line, "@") {
			rules.Patterns.Add(line)
			continue
		}

		name, value := splitSetting(line)
		key, ok := ParseKey(name)
		if !ok {
			rules.Warnings = append(rules.Warnings,
				fmt.Sprintf("%s is not recognized as correct option", name))
			continue
		}
		if err := rules.Settings.Set(key, value); err != nil {
			rules.Warnings = append(rules.Warnings, err.Error())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if rules.Settings.NoIgnoreNodeModules {
		rules.Patterns.Remove(NodeModules)
	}

	return rules, nil
}

// splitSetting splits "@name=value". Only the text between the first and the
// second '=' is the value.
func splitSetting(line string) (string, string) {
	name, rest, _ := strings.Cut(strings.TrimPrefix(line, "@"), "=")
	value, _, _ := strings.Cut(rest, "=")
	return strings.TrimSpace(name), value
}

// Exists reports whether root already has a rules file.
func Exists(fs afero.Fs, root string) (bool, error) {
	return afero.Exists(fs, Path(root))
}

// WriteDefault creates root's rules file with the explanatory header and the
// default rule list. It never overwrites an existing file and removes its
// own partial output when the write fails.
func WriteDefault(fs afero.Fs, root string) error {
	path := Path(root)

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrConfigExists
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	_, werr := f.WriteString(DefaultContent())
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		if rmErr := fs.Remove(path); rmErr != nil {
			return fmt.Errorf("failed to write %s: %w (cleanup failed: %v)", path, werr, rmErr)
		}
		return fmt.Errorf("failed to write %s: %w", path, werr)
	}

	return nil
}
