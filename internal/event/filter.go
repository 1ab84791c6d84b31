package event

import "strings"

// AllowList is the set of repository full names permitted to trigger
// notifications. An empty list disables filtering entirely.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from repository full names. Blank
// entries are skipped.
func NewAllowList(repos []string) AllowList {
	list := make(AllowList, len(repos))
	for _, repo := range repos {
		repo = strings.TrimSpace(repo)
		if repo == "" {
			continue
		}
		list[repo] = struct{}{}
	}
	return list
}

// ParseAllowList builds an AllowList from a comma-separated string.
func ParseAllowList(s string) AllowList {
	if strings.TrimSpace(s) == "" {
		return AllowList{}
	}
	return NewAllowList(strings.Split(s, ","))
}

// Allows reports whether a repository may trigger notifications.
func (a AllowList) Allows(repo string) bool {
	if len(a) == 0 {
		return true
	}
	_, ok := a[repo]
	return ok
}
