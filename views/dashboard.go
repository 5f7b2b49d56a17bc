package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"syncode/codesync"
	"syncode/gateway"
	"syncode/session"
	"syncode/types"
)

// Languages the editor accepts.
var Languages = []string{"python", "cpp", "c", "java", "javascript"}

const (
	TabEditor = "editor"
	TabChat   = "chat"
)

// DashboardView is the editor screen: code, language, output, the user's
// snippet list and the realtime mirror. Local edits go out over the channel;
// inbound edits overwrite the editor unconditionally, last event wins.
type DashboardView struct {
	Gateway *gateway.Client
	Session *session.Manager
	Channel *codesync.Channel

	// mu guards the editor and list state, which is touched both by the
	// command loop and by the channel's receive callback.
	mu        sync.Mutex
	Editor    types.EditorState
	Output    string
	Snippets  []types.Snippet
	ActiveTab string
	IsRunning bool
	IsSaving  bool
}

func NewDashboardView(gw *gateway.Client, sess *session.Manager, ch *codesync.Channel) *DashboardView {
	return &DashboardView{
		Gateway:   gw,
		Session:   sess,
		Channel:   ch,
		Editor:    types.EditorState{Language: "python"},
		ActiveTab: TabEditor,
	}
}

// SetCode applies a local edit and mirrors it to the other participants.
func (v *DashboardView) SetCode(code string) {
	v.mu.Lock()
	v.Editor.Code = code
	v.mu.Unlock()

	if v.Channel != nil {
		v.Channel.EmitCodeChange(code)
	}
}

// ApplyRemoteCode adopts an inbound edit. No merge, no suppression: whatever
// arrived last is what the editor shows.
func (v *DashboardView) ApplyRemoteCode(code string) {
	v.mu.Lock()
	v.Editor.Code = code
	v.mu.Unlock()
}

func (v *DashboardView) SetLanguage(language string) error {
	for _, l := range Languages {
		if l == language {
			v.mu.Lock()
			v.Editor.Language = language
			v.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("unknown language %q", language)
}

func (v *DashboardView) Code() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Editor.Code
}

// Run submits the editor contents for execution. Empty or whitespace-only
// code short-circuits with a fixed warning and never touches the network.
func (v *DashboardView) Run() {
	v.mu.Lock()
	code := v.Editor.Code
	language := v.Editor.Language
	if strings.TrimSpace(code) == "" {
		v.Output = "⚠️ Code is empty!"
		v.mu.Unlock()
		return
	}
	v.IsRunning = true
	v.Output = "Running..."
	v.mu.Unlock()

	output, err := v.Gateway.RunCode(language, code)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.IsRunning = false
	if err != nil {
		// Execution failures surface as output text, never as a thrown error.
		v.Output = "❌ Error: " + gatewayMessage(err)
		return
	}
	if output == "" {
		output = "No output"
	}
	v.Output = output
}

// Save persists the snippet, registers it with the chat assistant and
// refreshes the list. Save-then-embed does not roll back: if the embedding
// call fails the snippet stays saved, the list still shows it and the
// returned error carries the notification.
func (v *DashboardView) Save() (string, error) {
	v.mu.Lock()
	code := v.Editor.Code
	language := v.Editor.Language
	if strings.TrimSpace(code) == "" {
		v.mu.Unlock()
		return "", nil
	}
	v.IsSaving = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.IsSaving = false
		v.mu.Unlock()
	}()

	saved, err := v.Gateway.SaveSnippet(language, code)
	if err != nil {
		return "", fmt.Errorf("Error saving snippet: %s", gatewayMessage(err))
	}

	embedErr := v.Gateway.AddSnippetEmbedding(saved.ID, code)

	if err := v.RefreshSnippets(); err != nil {
		return "", err
	}

	if embedErr != nil {
		return "", fmt.Errorf("Error syncing snippet to ChatBot: %s", gatewayMessage(embedErr))
	}
	return "✅ Snippet saved and synced to ChatBot!", nil
}

// RefreshSnippets reloads the user's snippets in backend-reported order.
func (v *DashboardView) RefreshSnippets() error {
	sess, err := v.Session.Get()
	if err != nil || !sess.Present() {
		return fmt.Errorf("no session")
	}

	snippets, err := v.Gateway.ListSnippets(sess.UserID)
	if err != nil {
		return fmt.Errorf("Error fetching snippets: %s", gatewayMessage(err))
	}

	v.mu.Lock()
	v.Snippets = snippets
	v.mu.Unlock()
	return nil
}

// OrderedSnippets returns the list as rendered: pinned first, backend order
// preserved within each group.
func (v *DashboardView) OrderedSnippets() []types.Snippet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return PartitionPinned(v.Snippets)
}

// TogglePin flips the pin flag with a full-record replace.
func (v *DashboardView) TogglePin(id string) error {
	v.mu.Lock()
	var target types.Snippet
	found := false
	for _, sn := range v.Snippets {
		if sn.ID == id {
			target = sn
			found = true
			break
		}
	}
	v.mu.Unlock()
	if !found {
		return fmt.Errorf("snippet %s not found", id)
	}

	target.Pinned = !target.Pinned
	updated, err := v.Gateway.UpdateSnippet(id, target)
	if err != nil {
		return fmt.Errorf("Error updating pin: %s", gatewayMessage(err))
	}

	v.mu.Lock()
	for i, sn := range v.Snippets {
		if sn.ID == id {
			v.Snippets[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return nil
}

func (v *DashboardView) DeleteSnippet(id string) error {
	if err := v.Gateway.DeleteSnippet(id); err != nil {
		return fmt.Errorf("Error deleting snippet: %s", gatewayMessage(err))
	}

	v.mu.Lock()
	kept := v.Snippets[:0]
	for _, sn := range v.Snippets {
		if sn.ID != id {
			kept = append(kept, sn)
		}
	}
	v.Snippets = kept
	v.mu.Unlock()
	return nil
}

// LoadSnippet puts a saved snippet back into the editor. Loading is a local
// action and is not mirrored over the channel.
func (v *DashboardView) LoadSnippet(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, sn := range v.Snippets {
		if sn.ID == id {
			v.Editor.Code = sn.Code
			v.Editor.Language = sn.Language
			return nil
		}
	}
	return fmt.Errorf("snippet %s not found", id)
}

// DownloadSnippet writes a snippet to disk as snippet.<language>.
func (v *DashboardView) DownloadSnippet(id, dir string) (string, error) {
	v.mu.Lock()
	var target types.Snippet
	found := false
	for _, sn := range v.Snippets {
		if sn.ID == id {
			target = sn
			found = true
			break
		}
	}
	v.mu.Unlock()
	if !found {
		return "", fmt.Errorf("snippet %s not found", id)
	}

	path := filepath.Join(dir, "snippet."+target.Language)
	if err := os.WriteFile(path, []byte(target.Code), 0644); err != nil {
		return "", fmt.Errorf("failed to write snippet file: %w", err)
	}
	return path, nil
}

func (v *DashboardView) ClearOutput() {
	v.mu.Lock()
	v.Output = ""
	v.mu.Unlock()
}

func (v *DashboardView) SetTab(tab string) {
	v.mu.Lock()
	v.ActiveTab = tab
	v.mu.Unlock()
}

// Logout clears the whole session; the session manager's OnClear hook resets
// the view tree.
func (v *DashboardView) Logout() error {
	return v.Session.Clear()
}

// PartitionPinned orders pinned snippets before unpinned ones without
// reordering within either group.
func PartitionPinned(snippets []types.Snippet) []types.Snippet {
	ordered := make([]types.Snippet, 0, len(snippets))
	for _, sn := range snippets {
		if sn.Pinned {
			ordered = append(ordered, sn)
		}
	}
	for _, sn := range snippets {
		if !sn.Pinned {
			ordered = append(ordered, sn)
		}
	}
	return ordered
}

// gatewayMessage keeps backend error text intact and falls back to the plain
// error string for transport failures.
func gatewayMessage(err error) string {
	if gwErr, ok := err.(*gateway.GatewayError); ok {
		return gwErr.Message
	}
	return err.Error()
}
