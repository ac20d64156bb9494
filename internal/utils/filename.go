package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxFilenameLength leaves room for an extension within the common 255 byte
// filesystem limit.
const maxFilenameLength = 200

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)

	// Characters Obsidian treats as link or tag syntax
	obsidianReplacer = strings.NewReplacer("#", "", "^", "", "[", "(", "]", ")")
)

// SanitizeFilename turns a book title into a filename that is valid on common
// filesystems and safe to use as an Obsidian note name.
func SanitizeFilename(filename string) string {
	filename = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, filename)
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = obsidianReplacer.Replace(filename)
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.Trim(filename, " .")

	if len(filename) > maxFilenameLength {
		filename = truncateUTF8(filename, maxFilenameLength)
		filename = strings.TrimRight(filename, " .")
	}

	if filename == "" {
		filename = "Untitled"
	}
	return filename
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
