package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"syncode/codesync"
	"syncode/gateway"
	"syncode/guard"
	"syncode/localstore"
	"syncode/session"
	"syncode/types"
	"syncode/views"
)

type app struct {
	session *session.Manager
	gateway *gateway.Client
	nav     *views.Navigator

	syncCancel context.CancelFunc
}

func main() {
	_ = godotenv.Load()
	loadConfig()

	storePath, err := localstore.DefaultPath()
	if err != nil {
		log.Fatal("Error resolving local storage path:", err)
	}
	store, err := localstore.Open(storePath)
	if err != nil {
		log.Fatal("Error opening local storage:", err)
	}
	defer store.Close()

	a := &app{session: session.NewManager(store)}
	a.gateway = gateway.New(apiBaseURL, a.session)
	a.buildViews()
	a.session.OnClear = a.onSessionCleared

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutdown signal received...")
		cancel()
		os.Exit(0)
	}()

	a.run(ctx)
}

func (a *app) buildViews() {
	nav := views.NewNavigator(a.session)
	nav.Welcome = &views.WelcomeView{}
	nav.Login = &views.LoginView{Gateway: a.gateway, Session: a.session}
	nav.Signup = &views.SignupView{Gateway: a.gateway, Session: a.session}
	nav.Dashboard = views.NewDashboardView(a.gateway, a.session, nil)
	nav.Profile = &views.ProfileView{Gateway: a.gateway, Session: a.session}
	nav.Admin = &views.AdminPanelView{Gateway: a.gateway}
	nav.Chatbot = views.NewChatbotView()
	a.nav = nav
}

// onSessionCleared tears down the sync channel and drops every view, the
// same full reload a logout triggers in the browser.
func (a *app) onSessionCleared() {
	a.stopSync()
	a.buildViews()
	a.nav.Reload()
}

// startSync dials the relay with the session token and mirrors inbound edits
// into the dashboard editor.
func (a *app) startSync(ctx context.Context) {
	a.stopSync()

	sess, err := a.session.Get()
	if err != nil || !sess.Present() {
		return
	}

	ch := codesync.New(relayWSURL.String(), sess.Token)
	ch.OnReceive = func(code string) {
		a.nav.Dashboard.ApplyRemoteCode(code)
		fmt.Println("\n🔄 Editor updated by another participant")
	}
	a.nav.Dashboard.Channel = ch

	syncCtx, cancel := context.WithCancel(ctx)
	a.syncCancel = cancel
	go ch.Run(syncCtx)
}

func (a *app) stopSync() {
	if a.syncCancel != nil {
		a.syncCancel()
		a.syncCancel = nil
	}
}

func (a *app) run(ctx context.Context) {
	a.nav.Welcome.Render(os.Stdout)

	// Restored sessions skip the splash and land on the role's home view.
	if sess, err := a.session.Get(); err == nil && sess.Present() {
		fmt.Printf("Welcome back, %s!\n", sess.Username)
		a.startSync(ctx)
		a.nav.Navigate(guard.DefaultLanding(sess.Role))
	} else {
		advance := make(chan struct{}, 1)
		timer := a.nav.Welcome.StartAutoAdvance(func() { advance <- struct{}{} })
		<-advance
		timer.Stop()
		a.nav.Navigate(guard.ViewLogin)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch a.nav.Current() {
		case guard.ViewWelcome:
			a.nav.Navigate(guard.ViewLogin)
		case guard.ViewLogin:
			if done := a.loginScreen(ctx); done {
				return
			}
		case guard.ViewSignup:
			a.signupScreen()
		case guard.ViewDashboard:
			if done := a.dashboardScreen(ctx); done {
				return
			}
		case guard.ViewProfile:
			a.profileScreen()
		case guard.ViewAdmin:
			if done := a.adminScreen(); done {
				return
			}
		case guard.ViewChatbot:
			a.chatbotScreen()
		default:
			a.nav.Navigate(guard.ViewWelcome)
		}
	}
}

func (a *app) loginScreen(ctx context.Context) bool {
	fmt.Println()
	fmt.Println("🔐 Login ('signup' to create an account, 'quit' to exit)")
	email := promptInput("Email: ")
	switch email {
	case "quit":
		return true
	case "signup":
		a.nav.Navigate(guard.ViewSignup)
		return false
	}

	a.nav.Login.Email = email
	a.nav.Login.Password = promptInput("Password: ")

	next, err := a.nav.Login.Submit()
	if err != nil {
		fmt.Println("❌", err)
		return false
	}

	a.startSync(ctx)
	a.nav.Navigate(next)
	return false
}

func (a *app) signupScreen() {
	fmt.Println()
	fmt.Println("📝 Sign up ('back' to return to login)")
	username := promptInput("Username: ")
	if username == "back" {
		a.nav.Navigate(guard.ViewLogin)
		return
	}

	a.nav.Signup.Username = username
	a.nav.Signup.Email = promptInput("Email: ")
	a.nav.Signup.Password = promptInput("Password: ")

	next, err := a.nav.Signup.Submit()
	if err != nil {
		fmt.Println("❌", err)
		a.nav.Navigate(guard.ViewLogin)
		return
	}
	a.nav.Navigate(next)
}

func (a *app) dashboardScreen(ctx context.Context) bool {
	dash := a.nav.Dashboard
	if err := dash.RefreshSnippets(); err != nil {
		log.Println("Error fetching snippets:", err)
	}

	for {
		fmt.Println()
		fmt.Printf("💻 Dashboard [%s] — code run save list load <n> pin <n> del <n> dl <n> output lang <name> profile admin chatbot logout quit\n", dash.Editor.Language)
		input := promptInput("> ")
		cmd, arg := splitCommand(input)

		switch cmd {
		case "code":
			fmt.Println("Enter code, end with a single '.' line:")
			dash.SetCode(readMultiline())
		case "lang":
			if err := dash.SetLanguage(arg); err != nil {
				fmt.Println("❌", err)
			}
		case "run":
			dash.Run()
			fmt.Println(dash.Output)
		case "output":
			fmt.Println(dash.Output)
		case "clear":
			dash.ClearOutput()
		case "save":
			notice, err := dash.Save()
			if err != nil {
				fmt.Println("❌", err)
			}
			if notice != "" {
				fmt.Println(notice)
			}
		case "list":
			printSnippets(dash)
		case "load":
			if snip, ok := snippetAt(dash, arg); ok {
				if err := dash.LoadSnippet(snip.ID); err != nil {
					fmt.Println("❌", err)
				}
			}
		case "pin":
			if snip, ok := snippetAt(dash, arg); ok {
				if err := dash.TogglePin(snip.ID); err != nil {
					fmt.Println("❌", err)
				}
			}
		case "del":
			if snip, ok := snippetAt(dash, arg); ok {
				if err := dash.DeleteSnippet(snip.ID); err != nil {
					fmt.Println("❌", err)
				}
			}
		case "dl":
			if snip, ok := snippetAt(dash, arg); ok {
				path, err := dash.DownloadSnippet(snip.ID, ".")
				if err != nil {
					fmt.Println("❌", err)
				} else {
					fmt.Println("📥 Saved to", path)
				}
			}
		case "profile":
			a.nav.Navigate(guard.ViewProfile)
			return false
		case "admin":
			a.nav.Navigate(guard.ViewAdmin)
			return false
		case "chatbot":
			a.nav.Navigate(guard.ViewChatbot)
			return false
		case "logout":
			if err := dash.Logout(); err != nil {
				log.Println("Error clearing session:", err)
			}
			return false
		case "quit":
			return true
		case "":
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *app) profileScreen() {
	view := a.nav.Profile
	if err := view.Load(); err != nil {
		fmt.Println("❌", err)
		a.nav.Navigate(guard.ViewDashboard)
		return
	}

	fmt.Println()
	fmt.Println("👤 Profile")
	fmt.Printf("Username: %s\nEmail: %s\n", view.Profile.Username, view.Profile.Email)
	fmt.Printf("Snippets: %d | Runs: %d\n", len(view.Snippets), len(view.RunHistory))

	if promptInput("Edit profile? (y/N): ") == "y" {
		view.Profile.Username = promptInput("New username: ")
		view.Profile.Email = promptInput("New email: ")
		avatar := promptInput("Avatar file (blank to skip): ")
		if err := view.Save(avatar); err != nil {
			fmt.Println("❌", err)
		} else {
			fmt.Println("✅ Profile updated")
		}
	}
	a.nav.Navigate(guard.ViewDashboard)
}

func (a *app) adminScreen() bool {
	view := a.nav.Admin
	fmt.Println()
	fmt.Println("🛠  Admin Panel")
	if err := view.Load(); err != nil {
		fmt.Println("❌", err)
	} else {
		stats := view.Stats()
		fmt.Printf("Users: %d | Snippets: %d\n", stats.TotalUsers, stats.TotalSnippets)
		for language, count := range stats.SnippetsPerLanguage {
			fmt.Printf("  %s: %d\n", language, count)
		}
		for _, user := range view.Users {
			fmt.Printf("  %s <%s> (%s)\n", user.Username, user.Email, user.Role)
		}
	}

	for {
		switch promptInput("admin> (refresh logout quit): ") {
		case "refresh", "":
			return false
		case "logout":
			if err := a.session.Clear(); err != nil {
				log.Println("Error clearing session:", err)
			}
			return false
		case "quit":
			return true
		}
	}
}

func (a *app) chatbotScreen() {
	view := a.nav.Chatbot
	fmt.Println()
	fmt.Println("🤖 ChatBot (blank line to go back)")
	for _, msg := range view.Messages {
		fmt.Printf("[%s] %s\n", msg.Role, msg.Text)
	}

	for {
		input := promptInput("You: ")
		if input == "" {
			a.nav.Navigate(guard.ViewDashboard)
			return
		}
		before := len(view.Messages)
		view.Send(input)
		for _, msg := range view.Messages[before:] {
			if msg.Role == "bot" {
				fmt.Println("Bot:", msg.Text)
			}
		}
	}
}

func printSnippets(dash *views.DashboardView) {
	snippets := dash.OrderedSnippets()
	if len(snippets) == 0 {
		fmt.Println("No snippets yet.")
		return
	}
	for i, snip := range snippets {
		pin := "  "
		if snip.Pinned {
			pin = "📌"
		}
		preview := snip.Code
		if len(preview) > 40 {
			preview = preview[:40] + "..."
		}
		fmt.Printf("%s %d. [%s] %s\n", pin, i+1, snip.Language, strings.ReplaceAll(preview, "\n", " "))
	}
}

func snippetAt(dash *views.DashboardView, arg string) (types.Snippet, bool) {
	snippets := dash.OrderedSnippets()
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil || index < 1 || index > len(snippets) {
		fmt.Println("Usage: <command> <snippet number from 'list'>")
		return types.Snippet{}, false
	}
	return snippets[index-1], true
}

func splitCommand(input string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func promptInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func readMultiline() string {
	reader := bufio.NewReader(os.Stdin)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\n")
		if line == "." || err != nil {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
