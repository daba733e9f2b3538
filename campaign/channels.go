package campaign

import (
	"sort"
	"strings"
)

// AddNew is the Channel selector sentinel that asks for a free-text channel name.
const AddNew = "Add new..."

// ChannelOptions returns the distinct, non-blank channel values plus the AddNew sentinel,
// sorted.
func ChannelOptions(values []string) []string {
	set := map[string]bool{AddNew: true}
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			set[s] = true
		}
	}

	options := make([]string, 0, len(set))
	for k := range set {
		options = append(options, k)
	}

	sort.Strings(options)

	return options
}
