package classify

import "strings"

// Class is the visual treatment a window receives.
type Class int

const (
	Normal Class = iota
	Bar
	BrowserLike
)

func (c Class) String() string {
	switch c {
	case Bar:
		return "bar"
	case BrowserLike:
		return "browser"
	default:
		return "normal"
	}
}

// Hint is the WM_CLASS pair a client sets on its window.
type Hint struct {
	Instance string
	Class    string
}

// Rule matches a window by exact class name or by a substring of its
// instance name. Both comparisons are case-sensitive.
type Rule struct {
	Classes   []string `toml:"classes"`
	Instances []string `toml:"instances"`
}

// Matches reports whether the hint satisfies the rule.
func (r Rule) Matches(h Hint) bool {
	for _, c := range r.Classes {
		if c != "" && h.Class == c {
			return true
		}
	}
	for _, sub := range r.Instances {
		if sub != "" && strings.Contains(h.Instance, sub) {
			return true
		}
	}
	return false
}

// Rules holds the matching rules for each special class.
type Rules struct {
	Browser Rule `toml:"browser"`
	Bar     Rule `toml:"bar"`
}

// DefaultRules matches Firefox as a browser and Polybar as a bar.
func DefaultRules() Rules {
	return Rules{
		Browser: Rule{
			Classes:   []string{"Firefox"},
			Instances: []string{"Navigator"},
		},
		Bar: Rule{
			Classes:   []string{"Polybar"},
			Instances: []string{"polybar"},
		},
	}
}

// Classify decides how a window is drawn from its WM_CLASS hint.
// ok is false when the server returned no hint; such windows are Normal.
// Browser rules win over bar rules.
func Classify(h Hint, ok bool, rules Rules) Class {
	if !ok {
		return Normal
	}
	if rules.Browser.Matches(h) {
		return BrowserLike
	}
	if rules.Bar.Matches(h) {
		return Bar
	}
	return Normal
}
