package fsmutil

import "strings"

// MakeTextList gives a nice list of things based on their display name. Used
// by diagnostics that name more than one offending entity, e.g. an LL(1)
// conflict naming both colliding productions.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}
