package proto

import "strings"

// modifierValues maps modifier token names to their bit in the KeyPress
// modifier bitmask. Fixed agent contract.
var modifierValues = map[string]int{
	"shift":   1,
	"control": 2,
	"alt":     4,
	"altgr":   8,
	"meta":    16,
}

// ParseKeyCombo splits a `MOD+MOD+...+KEY` combination. The last token is the
// key, all preceding tokens are modifiers. Unrecognized modifier tokens
// contribute 0 to the bitmask and are not an error.
func ParseKeyCombo(combo string) (key string, modifiers int) {
	tokens := strings.Split(combo, "+")
	key = tokens[len(tokens)-1]
	for _, token := range tokens[:len(tokens)-1] {
		modifiers += modifierValues[token]
	}
	return key, modifiers
}
