package quiz

import "fmt"

// Locale selects the language of feedback texts
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleFrench  Locale = "fr"
)

type messages struct {
	prompt    string
	correct   string // %s = confirmed pitch
	incorrect string // %s = rejected guess
}

var catalog = map[Locale]messages{
	LocaleEnglish: {
		prompt:    "What note is this?",
		correct:   "Correct! It is a %s.",
		incorrect: "Wrong. You chose %s.",
	},
	LocaleFrench: {
		prompt:    "Quelle est cette note ?",
		correct:   "Correct ! C'est bien un %s.",
		incorrect: "Faux. Vous avez choisi %s.",
	},
}

// ParseLocale returns the locale for s, or an error if there is no catalog
// for it. An empty string selects English.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return LocaleEnglish, nil
	}
	l := Locale(s)
	if _, ok := catalog[l]; !ok {
		return "", fmt.Errorf("unknown locale %q", s)
	}
	return l, nil
}

func messagesFor(l Locale) messages {
	if m, ok := catalog[l]; ok {
		return m
	}
	return catalog[LocaleEnglish]
}
