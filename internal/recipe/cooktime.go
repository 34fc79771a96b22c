package recipe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseCookTime converts free-form cook-time input into whole minutes.
// Accepted forms: "45", "45 min", "45m", "1h", "1h30m", "1 hour 30 minutes",
// "1:30" (h:mm). Empty input parses to 0.
func ParseCookTime(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}

	if h, m, ok := parseClockForm(s); ok {
		return h*60 + m, nil
	}

	tokens := splitUnitTokens(s)
	if len(tokens) == 0 {
		return 0, fmt.Errorf("unrecognized cook time %q", s)
	}

	// A bare number is minutes.
	if len(tokens) == 1 && tokens[0].unit == "" {
		return tokens[0].value, nil
	}

	total := 0
	for _, tok := range tokens {
		switch tok.unit {
		case "h", "hr", "hrs", "hour", "hours":
			total += tok.value * 60
		case "m", "min", "mins", "minute", "minutes":
			total += tok.value
		case "":
			// trailing bare number after an hour token reads as minutes
			total += tok.value
		default:
			return 0, fmt.Errorf("unrecognized cook time unit %q", tok.unit)
		}
	}
	return total, nil
}

// FormatCookTime renders minutes the way the form accepts them back.
func FormatCookTime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func parseClockForm(s string) (h, m int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 {
		return 0, 0, false
	}
	m, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

type unitToken struct {
	value int
	unit  string
}

// splitUnitTokens walks the input pairing each number with the unit word
// that follows it, tolerating spaces between them. Returns nil on any
// non-numeric, non-unit garbage.
func splitUnitTokens(s string) []unitToken {
	var tokens []unitToken
	i := 0
	for i < len(s) {
		r := rune(s[i])
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(s[i:j])
			if err != nil {
				return nil
			}
			tokens = append(tokens, unitToken{value: n})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(s) && unicode.IsLetter(rune(s[j])) {
				j++
			}
			if len(tokens) == 0 || tokens[len(tokens)-1].unit != "" {
				return nil
			}
			tokens[len(tokens)-1].unit = s[i:j]
			i = j
		default:
			return nil
		}
	}
	return tokens
}
