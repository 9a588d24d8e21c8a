package validator

import "strconv"

// ScanPlaceholders returns the placeholder names of template in order of
// appearance. A placeholder is '%' followed by one or more ASCII letters or
// digits; duplicates are kept. A '%' not followed by such a character is
// plain text.
func ScanPlaceholders(template string) []string {
	var names []string

	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}

		j := i + 1
		for j < len(template) && isPlaceholderChar(template[j]) {
			j++
		}
		if j == i+1 {
			continue
		}

		names = append(names, template[i+1:j])
		i = j - 1
	}

	return names
}

// isPlaceholderChar reports whether b may appear in a placeholder name.
func isPlaceholderChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Classify returns Positional when placeholders are exactly "1", "2", ...
// in order, and Named otherwise. An empty sequence is Positional.
func Classify(placeholders []string) Variant {
	for i, name := range placeholders {
		if name != strconv.Itoa(i+1) {
			return Named
		}
	}
	return Positional
}
