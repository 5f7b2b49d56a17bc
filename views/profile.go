package views

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"syncode/gateway"
	"syncode/session"
	"syncode/types"
)

// ProfileView shows the account details plus the user's snippets and
// server-retained run history.
type ProfileView struct {
	Gateway *gateway.Client
	Session *session.Manager

	Profile    types.Profile
	Snippets   []types.Snippet
	RunHistory []types.RunResult
}

// Load fetches profile, snippets and run history. Each fetch fails
// independently; a missing section is logged and left empty rather than
// taking the whole view down.
func (v *ProfileView) Load() error {
	sess, err := v.Session.Get()
	if err != nil || !sess.Present() {
		return fmt.Errorf("no session")
	}

	profile, err := v.Gateway.GetProfile(sess.UserID)
	if err != nil {
		log.Println("Error fetching profile:", err)
	} else {
		v.Profile = profile
	}

	snippets, err := v.Gateway.ListSnippets(sess.UserID)
	if err != nil {
		log.Println("Error fetching snippets:", err)
	} else {
		v.Snippets = snippets
	}

	history, err := v.Gateway.ListRunHistory(sess.UserID)
	if err != nil {
		log.Println("Error fetching run history:", err)
	} else {
		v.RunHistory = history
	}

	return nil
}

// Save pushes the edited fields, with an optional avatar file.
func (v *ProfileView) Save(avatarPath string) error {
	sess, err := v.Session.Get()
	if err != nil || !sess.Present() {
		return fmt.Errorf("no session")
	}

	if avatarPath == "" {
		err = v.Gateway.UpdateProfile(sess.UserID, v.Profile.Username, v.Profile.Email, "", nil)
	} else {
		file, openErr := os.Open(avatarPath)
		if openErr != nil {
			return fmt.Errorf("failed to open avatar file: %w", openErr)
		}
		defer file.Close()
		err = v.Gateway.UpdateProfile(sess.UserID, v.Profile.Username, v.Profile.Email, filepath.Base(avatarPath), file)
	}

	if err != nil {
		return fmt.Errorf("Error updating profile: %s", gatewayMessage(err))
	}
	return nil
}
