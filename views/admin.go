package views

import (
	"fmt"

	"syncode/gateway"
	"syncode/types"
)

// AdminPanelView lists every user and snippet and derives simple stats from
// what it already fetched. Nothing here is persisted.
type AdminPanelView struct {
	Gateway *gateway.Client

	Users    []types.AdminUser
	Snippets []types.Snippet
	Loading  bool
}

// AdminStats is a pure reduction over the fetched lists.
type AdminStats struct {
	TotalUsers          int
	TotalSnippets       int
	SnippetsPerLanguage map[string]int
}

func (v *AdminPanelView) Load() error {
	v.Loading = true
	defer func() { v.Loading = false }()

	users, err := v.Gateway.ListUsers()
	if err != nil {
		return fmt.Errorf("Error fetching data. Make sure you are logged in as admin.")
	}

	snippets, err := v.Gateway.ListAllSnippets()
	if err != nil {
		return fmt.Errorf("Error fetching data. Make sure you are logged in as admin.")
	}

	v.Users = users
	v.Snippets = snippets
	return nil
}

func (v *AdminPanelView) Stats() AdminStats {
	stats := AdminStats{
		TotalUsers:          len(v.Users),
		TotalSnippets:       len(v.Snippets),
		SnippetsPerLanguage: make(map[string]int),
	}
	for _, sn := range v.Snippets {
		language := sn.Language
		if language == "" {
			language = "Unknown"
		}
		stats.SnippetsPerLanguage[language]++
	}
	return stats
}
