// Package extension classifies file names into the extension categories used
// throughout insights.
package extension

import "strings"

const (
	// Folder is the category recorded for directories and symlinks.
	Folder = "folder"

	// Ignore is the category of extensionless files and dotfiles.
	Ignore = "ignore"
)

// Of returns the extension of name, including the leading dot. A dot in the
// first position is not a separator, so ".gitignore" has no extension while
// "file." has the extension ".".
func Of(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || name == ".." {
		return ""
	}
	return name[idx:]
}

// Compound returns everything after the first dot of name, prefixed with a
// dot: "a.tar.gz" gives ".tar.gz", "Makefile" gives ".". It is the value
// wildcard ignore patterns are compared against.
func Compound(name string) string {
	_, rest, _ := strings.Cut(name, ".")
	return "." + rest
}

// Category maps an extension as returned by Of to its category label.
func Category(ext string) string {
	if ext == "" || ext == "." {
		return Ignore
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// CategoryOf is Category(Of(name)).
func CategoryOf(name string) string {
	return Category(Of(name))
}
