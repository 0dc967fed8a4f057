// Package main runs the StaffDesk terminal client: an interactive shell
// over the session store, route guard and role policy.
package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/itroyan/staffdesk/internal/client/api"
	"github.com/itroyan/staffdesk/internal/client/guard"
	"github.com/itroyan/staffdesk/internal/client/session"
	"github.com/itroyan/staffdesk/internal/client/state"
	"github.com/itroyan/staffdesk/internal/config"
	"github.com/itroyan/staffdesk/internal/logger"
	"github.com/itroyan/staffdesk/internal/models"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// shellNavigator prints redirect decisions instead of switching screens;
// the shell has no view stack, so a redirect is a hint to the user.
type shellNavigator struct{}

func (shellNavigator) Navigate(to guard.Route) {
	switch to {
	case guard.RouteLogin:
		fmt.Println("You are signed out. Run 'login' first.")
	case guard.RouteOnboarding:
		fmt.Println("Your organization is not set up yet. Run 'onboard' first.")
	}
}

// registerOwnerResponse is the 201 body of /auth/register-owner.
type registerOwnerResponse struct {
	User models.UserProfile `json:"user"`
}

// prompt reads a single line of input with a label.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// guarded evaluates the route guard for a protected command and reports
// whether the command may proceed.
func guarded(store *session.Store, opts guard.Options) bool {
	return guard.Apply(store.Snapshot(), opts, shellNavigator{}) == guard.Render
}

// repl runs the interactive shell loop.
func repl(ctx context.Context, store *session.Store, client *api.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("staffdesk> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, whoami, refresh, view <admin|employee>, employees, add-employee, onboard, register-owner, exit")
		case "login":
			email := prompt(scanner, "Email: ")
			password := prompt(scanner, "Password: ")
			if store.Login(ctx, email, password) {
				fmt.Println("Signed in as", email)
			} else {
				fmt.Println("Login failed")
			}
		case "logout":
			store.Logout(func() {
				fmt.Println("Signed out")
			})
		case "whoami":
			if !guarded(store, guard.Options{}) {
				continue
			}
			snap := store.Snapshot()
			b, _ := json.MarshalIndent(snap.Profile, "", "  ")
			fmt.Println(string(b))
			fmt.Println("View mode:", snap.ViewMode)
		case "refresh":
			store.RefreshUser(ctx)
			fmt.Println("Profile refreshed")
		case "view":
			if len(args) < 2 {
				fmt.Println("Usage: view <admin|employee>")
				continue
			}
			if !store.CanSwitchViews() {
				fmt.Println("Your role cannot switch views")
				continue
			}
			switch args[1] {
			case "admin":
				store.SwitchToAdminView()
			case "employee":
				store.SwitchToEmployeeView()
			default:
				fmt.Println("Usage: view <admin|employee>")
				continue
			}
			fmt.Println("View mode:", store.ViewMode())
		case "employees":
			if !guarded(store, guard.Options{}) {
				continue
			}
			res := api.Get[[]models.UserProfile](ctx, client, "/employees")
			if !res.OK() {
				fmt.Println("Could not load employees:", res.Err)
				continue
			}
			for _, e := range *res.Data {
				fmt.Printf("%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Role, e.Position)
			}
		case "add-employee":
			if !guarded(store, guard.Options{}) {
				continue
			}
			gate := guard.RoleGate{Allowed: models.AdminCapableRoles}
			if v := gate.Check(store.Snapshot()); !v.Allowed {
				fmt.Println(v.Fallback())
				continue
			}
			req := models.CreateEmployeeRequest{
				Name:       prompt(scanner, "Name: "),
				Email:      prompt(scanner, "Email: "),
				Password:   prompt(scanner, "Password: "),
				Department: prompt(scanner, "Department: "),
				Position:   prompt(scanner, "Position: "),
				Role:       models.Role(prompt(scanner, "Role (Owner/HR Admin/Manager/Employee): ")),
				JoinDate:   prompt(scanner, "Join date (YYYY-MM-DD): "),
			}
			res := api.Post[models.UserProfile](ctx, client, "/employees", req)
			if !res.OK() {
				fmt.Println("Could not create employee:", res.Err)
				continue
			}
			fmt.Printf("Created %s (#%d)\n", res.Data.Name, res.Data.ID)
		case "onboard":
			// The onboarding command must stay reachable for users who
			// still need onboarding.
			if !guarded(store, guard.Options{SkipOnboardingCheck: true}) {
				continue
			}
			if !store.NeedsOnboarding() {
				fmt.Println("Your organization is already set up")
				continue
			}
			req := models.CreateOrganizationRequest{
				Name:        prompt(scanner, "Organization name: "),
				Description: prompt(scanner, "Description: "),
			}
			res := api.Post[models.Organization](ctx, client, "/organizations", req)
			if !res.OK() {
				fmt.Println("Could not create organization:", res.Err)
				continue
			}
			store.RefreshUser(ctx)
			fmt.Printf("Organization %q created\n", res.Data.Name)
		case "register-owner":
			req := models.RegisterOwnerRequest{
				FirstName:        prompt(scanner, "First name: "),
				LastName:         prompt(scanner, "Last name: "),
				Email:            prompt(scanner, "Email: "),
				Password:         prompt(scanner, "Password: "),
				OrganizationName: prompt(scanner, "Organization name: "),
			}
			res := api.Post[registerOwnerResponse](ctx, client, "/auth/register-owner", req)
			if !res.OK() {
				fmt.Println("Registration failed:", res.Err)
				continue
			}
			fmt.Printf("Registered %s — run 'login' to sign in\n", res.Data.User.Email)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	fmt.Printf("StaffDesk Client\nVersion: %s\nBuild Date: %s\n",
		cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	appLog := logger.New()
	if err := appLog.Init(options.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = appLog.Log.Sync() }()

	persisted, err := state.Open(options.StateFile)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(options.BaseURL, persisted, appLog.Log)
	store := session.New(client, persisted, appLog.Log)

	ctx := context.Background()

	// Silent session restoration; the guard's loading rule keeps any
	// redirect decision from firing before this completes.
	store.Restore(ctx)
	if snap := store.Snapshot(); snap.Authenticated {
		fmt.Printf("Welcome back, %s (%s)\n", snap.Profile.Name, snap.Profile.Role)
	} else {
		fmt.Println("Not signed in. Run 'login' or 'register-owner'.")
	}

	repl(ctx, store, client)
}
