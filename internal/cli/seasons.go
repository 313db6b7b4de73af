// Package cli holds flag helpers shared by the pipeline commands.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Seasons collects season end years from a repeatable --season flag. Comma
// lists are accepted too, so "--season 2023 --season 2024" and
// "--season 2023,2024" are equivalent.
type Seasons []int

// String implements flag.Value.
func (s *Seasons) String() string {
	parts := make([]string, len(*s))
	for i, year := range *s {
		parts[i] = strconv.Itoa(year)
	}

	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (s *Seasons) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		year, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid season %q: expected a year like 2024", part)
		}

		*s = append(*s, year)
	}

	return nil
}
