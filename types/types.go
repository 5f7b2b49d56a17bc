package types

// Roles carried in the session and required by gated views.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is the authenticated identity held for the lifetime of a client
// process. If Token is empty the whole session is treated as absent.
type Session struct {
	UserID   string
	Username string
	Token    string
	Role     string
}

func (s Session) Present() bool {
	return s.Token != ""
}

type Snippet struct {
	ID        string `json:"_id"`
	OwnerID   string `json:"userId"`
	Language  string `json:"language"`
	Code      string `json:"code"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"createdAt"`
}

// RunResult is a single entry of the server-retained run history.
// Output of the current editor run is shown once and never persisted locally.
type RunResult struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Output   string `json:"output"`
	Time     string `json:"time"`
}

type EditorState struct {
	Code     string
	Language string
}

type ChatMessage struct {
	Role string // "system", "user" or "bot"
	Text string
}

type Profile struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type AdminUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
