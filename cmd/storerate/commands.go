package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/storerating/store-rating/internal/client/views"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/navigation"
	"github.com/storerating/store-rating/internal/core/ports"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (c *cli) acceptedRoles() []domain.Role {
	if c.admin {
		return []domain.Role{domain.RoleAdministrator}
	}
	return []domain.Role{domain.RoleEndUser}
}

// enter asks nav for path before a protected command runs. Anything but a
// rendered path refuses the command; a login redirect is printed so the user
// sees where the session would resume.
func (c *cli) enter(nav *navigation.Navigator, path string) error {
	d := nav.Go(navigation.Location{Path: path})
	switch {
	case d.Outcome == navigation.Deny:
		return fmt.Errorf("%s: %w", path, domain.ErrForbidden)
	case navigation.Clean(d.Location.Path) == navigation.Clean(path):
		return nil
	case !c.gate.IsAuthenticated():
		printDecision(c.out, d)
		return fmt.Errorf("%w: run \"storerate login\" first", domain.ErrNotAuthenticated)
	default:
		return fmt.Errorf("%s: %w", path, domain.ErrForbidden)
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	next := fs.String("next", "", "path to open after login")
	if err := fs.Parse(reorder(args)); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: storerate login <email> <password> [-next <path>]")
	}

	if *next != "" {
		c.nav.Go(navigation.Location{Path: *next})
	} else {
		c.nav.Go(navigation.Location{Path: navigation.PathLogin})
	}

	view := views.NewLoginView(c.api, c.gate, c.nav, c.acceptedRoles(), c.log)
	d, err := view.Submit(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return err
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("session could not be saved; it will not survive this process")
	}

	id, _ := c.gate.CurrentIdentity()
	fmt.Fprintf(c.out, "Logged in as %s (%s)\n", id.Name, id.Role)
	printDecision(c.out, d)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if c.gate.IsAuthenticated() {
		if err := c.api.Logout(ctx); err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
	if err := c.gate.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out")
	return nil
}

func (c *cli) whoami() error {
	id, ok := c.gate.CurrentIdentity()
	if !ok {
		fmt.Fprintln(c.out, "Not logged in")
		return nil
	}
	printJSON(c.out, id)
	return nil
}

func (c *cli) signup(ctx context.Context, args []string) error {
	fs := newFlags("signup")
	var f views.SignUpForm
	fs.StringVar(&f.Name, "name", "", "")
	fs.StringVar(&f.Email, "email", "", "")
	fs.StringVar(&f.Address, "address", "", "")
	fs.StringVar(&f.Password, "password", "", "")
	fs.StringVar(&f.Confirm, "confirm", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := views.NewSignUpView(c.api, c.nav).Submit(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Account created. Please log in.")
	printDecision(c.out, d)
	return nil
}

func (c *cli) stores(ctx context.Context, args []string) error {
	fs := newFlags("stores")
	name := fs.String("name", "", "")
	address := fs.String("address", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.enter(c.userNav, navigation.PathHome); err != nil {
		return err
	}

	view := views.NewStoreListView(c.api, c.api, c.log)
	if err := view.Load(ctx); err != nil {
		fmt.Fprintln(c.out, view.Message())
		return err
	}
	printStores(c.out, view.Visible(*name, *address))
	return nil
}

func (c *cli) rate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: storerate rate <storeID> <1-5>")
	}
	score, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.ErrInvalidScore
	}
	if err := c.enter(c.userNav, navigation.PathHome); err != nil {
		return err
	}

	view := views.NewStoreListView(c.api, c.api, c.log)
	if err := view.Load(ctx); err != nil {
		return err
	}
	if err := view.Rate(ctx, args[0], score); err != nil {
		return err
	}
	for _, s := range view.Visible("", "") {
		if s.ID == args[0] {
			printStores(c.out, []domain.Store{s})
		}
	}
	return nil
}

func (c *cli) password(ctx context.Context, args []string) error {
	fs := newFlags("password")
	var f views.PasswordForm
	fs.StringVar(&f.Current, "current", "", "")
	fs.StringVar(&f.New, "new", "", "")
	fs.StringVar(&f.Confirm, "confirm", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.enter(c.userNav, navigation.PathSettings); err != nil {
		return err
	}
	if err := views.NewProfileView(c.api).ChangePassword(ctx, f); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Password updated successfully")
	return nil
}

func (c *cli) open(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storerate open <path>")
	}
	printDecision(c.out, c.nav.Go(navigation.Location{Path: args[0]}))
	return nil
}

func (c *cli) echo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storerate echo <json>")
	}
	var body any
	if err := json.Unmarshal([]byte(args[0]), &body); err != nil {
		body = args[0]
	}
	data, err := c.api.Echo(ctx, body)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}

// adminPaths maps each admin subcommand to the dashboard route it stands for.
var adminPaths = map[string]string{
	"dashboard": navigation.PathHome,
	"users":     navigation.PathUsers,
	"add-user":  navigation.PathAddUser,
	"stores":    navigation.PathStores,
	"add-store": navigation.PathAddStore,
	"ratings":   navigation.PathRatings,
}

func (c *cli) adminCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: storerate admin dashboard|users|add-user|stores|add-store|ratings")
	}
	sub, rest := args[0], args[1:]
	path, ok := adminPaths[sub]
	if !ok {
		return fmt.Errorf("unknown admin command %q", sub)
	}
	if err := c.enter(c.adminNav, path); err != nil {
		return err
	}
	view := views.NewAdminView(c.api)

	switch sub {
	case "dashboard":
		stats, err := view.Dashboard(ctx)
		if err != nil {
			return err
		}
		printJSON(c.out, stats)
	case "users":
		fs := newFlags("users")
		var f ports.UserFilter
		var role string
		fs.StringVar(&f.Name, "name", "", "")
		fs.StringVar(&f.Email, "email", "", "")
		fs.StringVar(&f.Address, "address", "", "")
		fs.StringVar(&role, "role", "", "")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		f.Role = domain.Role(role)
		users, err := view.Users(ctx, f)
		if err != nil {
			return err
		}
		printUsers(c.out, users)
	case "add-user":
		fs := newFlags("add-user")
		var in ports.AddUserInput
		var role string
		fs.StringVar(&in.Name, "name", "", "")
		fs.StringVar(&in.Email, "email", "", "")
		fs.StringVar(&in.Address, "address", "", "")
		fs.StringVar(&in.Password, "password", "", "")
		fs.StringVar(&role, "role", string(domain.RoleEndUser), "")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		in.Role = domain.Role(role)
		user, err := view.AddUser(ctx, in)
		if err != nil {
			return err
		}
		printJSON(c.out, user)
	case "stores":
		fs := newFlags("stores")
		var f ports.StoreFilter
		fs.StringVar(&f.Name, "name", "", "")
		fs.StringVar(&f.Address, "address", "", "")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		stores, err := view.Stores(ctx, f)
		if err != nil {
			return err
		}
		printStores(c.out, stores)
	case "add-store":
		fs := newFlags("add-store")
		var in ports.AddStoreInput
		fs.StringVar(&in.Name, "name", "", "")
		fs.StringVar(&in.Email, "email", "", "")
		fs.StringVar(&in.Address, "address", "", "")
		fs.StringVar(&in.OwnerID, "owner", "", "")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		store, err := view.AddStore(ctx, in)
		if err != nil {
			return err
		}
		printJSON(c.out, store)
	case "ratings":
		ratings, err := view.Ratings(ctx)
		if err != nil {
			return err
		}
		printJSON(c.out, ratings)
	default:
		return fmt.Errorf("unknown admin command %q", sub)
	}
	return nil
}

// reorder moves flags ahead of positional arguments so "login a b -next x"
// parses like "login -next x a b".
func reorder(args []string) []string {
	var flags, pos []string
	for i := 0; i < len(args); i++ {
		if len(args[i]) > 1 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if i+1 < len(args) && !hasValue(args[i]) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		pos = append(pos, args[i])
	}
	return append(flags, pos...)
}

func hasValue(flagArg string) bool {
	return strings.Contains(flagArg, "=")
}

func printDecision(w io.Writer, d navigation.Decision) {
	switch d.Outcome {
	case navigation.Deny:
		fmt.Fprintf(w, "%s: access denied\n", d.Location.Path)
	default:
		fmt.Fprintf(w, "-> %s\n", d.Location.Path)
	}
	if d.Location.From != nil {
		fmt.Fprintf(w, "   (after login: %s)\n", d.Location.From.Path)
	}
}

func printStores(w io.Writer, stores []domain.Store) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tOVERALL\tYOURS")
	for _, s := range stores {
		overall := "-"
		if s.OverallRating != nil {
			overall = strconv.FormatFloat(*s.OverallRating, 'f', 1, 64) + "/5"
		}
		yours := "-"
		if s.UserRating != nil {
			yours = strconv.Itoa(*s.UserRating) + "/5"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Address, overall, yours)
	}
	_ = tw.Flush()
}

func printUsers(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tADDRESS\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Address, u.Role)
	}
	_ = tw.Flush()
}

func printJSON(w io.Writer, v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(w, v)
		return
	}
	fmt.Fprintln(w, string(bytes))
}
