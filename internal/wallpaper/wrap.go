package wallpaper

import "strings"

// Wrap breaks text into lines no wider than maxWidth using a greedy fit.
//
// Words are separated by single spaces and each line starts with one word;
// the next word is appended while the measured candidate stays strictly
// narrower than maxWidth. A word wider than maxWidth on its own still gets
// a line of its own. strings.Join(Wrap(t, w, m), " ") == t for every t.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Split(text, " ")

	lines := make([]string, 0, 1)
	current := words[0]

	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) < maxWidth {
			current = candidate
			continue
		}

		lines = append(lines, current)
		current = word
	}

	return append(lines, current)
}
