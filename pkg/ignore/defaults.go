package ignore

import "strings"

// FileName is the name of the per-project rules file.
const FileName = ".insightsIgnore"

// NodeModules is the rule dropped by @noIgnoreNodeModules=true.
const NodeModules = "node_modules"

var basePatterns = []string{
	NodeModules, FileName,
	"*.rar", "*.zip", "*.waw", "*.svg", "*.png", "*.ico", "*.gif",
	"*.mp3", "*.mp4", "*.jpg", "*.jpeg", "*.raw",
}

var defaultPatterns = []string{
	"package.json", "package-lock.json", ".gitignore", ".eslintrc.yml",
	".vscodeignore", "LICENSE", ".npmignore", ".travis.yml", ".jshintrc",
	"gulpfile.js", "license", "*.txt", "LICENSE.txt", ".git", "Cargo.toml",
	"target", "Lia.yaml", "EllieMod", "*.eiw",
}

const header = `// ******************************************************************************
// * You can ignore file extensions like *.[fileExtension]                      *
// * You can add settings like @[settingName]=[value]                           *
// * You have to write all rules line by line without ','(Comma)                *
// * You cannot add comment end of the rule. Example: e.js //Test File          *
// * You cannot add multiple rules to one line                                  *
// * You are free to delete this comment                                        *
// * Settings as default                                                        *
// *  - @exploreTimeout=7000      -  Max 25000 Min 2000 Timeout between reports *
// *  - @noIgnoreNodeModules=false -  Overrides default node_modules ignore     *
// *  - @reExploreTimeout=5000    -  Min 5000 Timeout for reExploring project   *
// ******************************************************************************
`

// BasePatterns returns the rules that always apply.
func BasePatterns() []string {
	return append([]string(nil), basePatterns...)
}

// DefaultPatterns returns the rules applied when no rules file exists. They
// are also written into a freshly created rules file.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

// DefaultContent is the body written by WriteDefault.
func DefaultContent() string {
	return header + strings.Join(defaultPatterns, "\n")
}
