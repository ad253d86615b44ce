package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/language"
)

// SelectLanguage picks the entry of available that best matches preferred.
// Entries that are not language tags are ignored. The bool is false when
// nothing matched and the first tagged entry was returned as the default.
func SelectLanguage(available []string, preferred ...string) (string, bool) {
	var supported []language.Tag
	var names []string
	for _, name := range available {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		names = append(names, name)
	}
	if len(supported) == 0 {
		return "", false
	}

	var wanted []language.Tag
	for _, p := range preferred {
		if tag, err := language.Parse(p); err == nil {
			wanted = append(wanted, tag)
		}
	}

	_, idx, confidence := language.NewMatcher(supported).Match(wanted...)
	return names[idx], confidence != language.No
}

// ResolveLanguageDir returns the language sub-directory of dir that best
// matches preferred, or dir itself when it has no language sub-directories.
func ResolveLanguageDir(dir, preferred string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read alias directory %s: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		}
	}
	sort.Strings(subdirs)

	selected, _ := SelectLanguage(subdirs, preferred)
	if selected == "" {
		return dir, nil
	}
	return filepath.Join(dir, selected), nil
}
