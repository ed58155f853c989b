package utils

import (
	"bufio"
	"os"
	"strings"
)

// SkipList holds terms that disqualify a source item before extraction,
// typically known-bad release groups
type SkipList struct {
	terms []string
}

// LoadSkipList loads skip terms from a file, one per line. A missing file
// yields an empty list.
func LoadSkipList(path string) (*SkipList, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &SkipList{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, term)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &SkipList{terms: terms}, nil
}

// Match checks a title against the list.
// Returns (matchedTerm, true) on a hit.
func (s *SkipList) Match(title string) (string, bool) {
	titleLower := strings.ToLower(title)

	for _, term := range s.terms {
		if strings.Contains(titleLower, strings.ToLower(term)) {
			return term, true
		}
	}

	return "", false
}
