// dashctl is a terminal client for the pulsedash server: login, the user
// table with search/filter/sort/pagination, dashboard stats and exports.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pulsedash/pulsedash/internal/client"
	"github.com/pulsedash/pulsedash/internal/export"
	"github.com/pulsedash/pulsedash/internal/listview"
	"github.com/pulsedash/pulsedash/internal/models"
	"golang.org/x/term"
)

const defaultServer = "http://localhost:5000"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var run func(*client.Client, []string) error
	switch cmd {
	case "signup":
		run = cmdSignup
	case "login":
		run = cmdLogin
	case "logout":
		run = cmdLogout
	case "me":
		run = cmdMe
	case "stats":
		run = cmdStats
	case "users":
		run = cmdUsers
	case "export":
		run = cmdExport
	case "seed":
		run = cmdSeed
	default:
		usage()
		os.Exit(2)
	}

	tokenPath, err := client.DefaultTokenPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot resolve home directory:", err)
		os.Exit(1)
	}
	api := client.New(serverURL(), client.NewFileTokenStore(tokenPath))

	if err := run(api, args); err != nil {
		if err == client.ErrUnauthorized {
			fmt.Fprintln(os.Stderr, "session expired or missing — run `dashctl login`")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: dashctl <command> [flags]

commands:
  signup   create an account
  login    sign in and store the session token
  logout   discard the stored session token
  me       show the current user
  stats    show the dashboard statistics
  users    show the user table (search/filter/sort/page flags)
  export   export the filtered user list (csv|xlsx|pdf|copy)
  seed     reset a development server to the sample users`)
}

func serverURL() string {
	if v := os.Getenv("PULSEDASH_SERVER"); v != "" {
		return v
	}
	return defaultServer
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stdout, "Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stdout, prompt+": ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func cmdSignup(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	fs.Parse(args)

	var err error
	if *name == "" {
		if *name, err = promptLine("Name"); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}
	if err := api.Signup(context.Background(), *name, *email, password); err != nil {
		return err
	}
	fmt.Println("Account created. Run `dashctl login` to sign in.")
	return nil
}

func cmdLogin(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	fs.Parse(args)

	var err error
	if *email == "" {
		if *email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	password, err := promptPassword()
	if err != nil {
		return err
	}
	user, err := api.Login(context.Background(), *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdLogout(api *client.Client, args []string) error {
	if err := api.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func cmdMe(api *client.Client, args []string) error {
	user, err := api.Me(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s userId=%s\n", user.Name, user.Email, user.RoleOrDefault(), user.UserID)
	return nil
}

func cmdStats(api *client.Client, args []string) error {
	stats, err := api.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("TOTAL USERS     %d\n", stats.TotalUsers)
	fmt.Printf("SESSIONS        %.1f%%\n", stats.Sessions)
	fmt.Printf("AVG. CLICK RATE %.1f%%\n", stats.ClickRate)
	fmt.Printf("PAGEVIEWS       %d\n", stats.Pageviews)
	return nil
}

// viewFlags are the shared search/filter/sort flags for users and export.
type viewFlags struct {
	search   *string
	role     *string
	typ      *string
	signedUp *string
	location *string
	sortKey  *string
	desc     *bool
}

func addViewFlags(fs *flag.FlagSet) *viewFlags {
	return &viewFlags{
		search:   fs.String("search", "", "substring match on name, email or user id"),
		role:     fs.String("role", listview.RoleAll, "role filter (All|Employee|Owner|Admin)"),
		typ:      fs.String("type", listview.TypeAny, "type filter (Any|Subscription|Non-subscription|Unassigned)"),
		signedUp: fs.String("signed-up", listview.SignedUpAny, `recency filter ("Any status"|"1 year ago"|"6 months ago")`),
		location: fs.String("location", "", "country filter"),
		sortKey:  fs.String("sort", "", "sort column (name|type|country|signedUp|email|role|userId)"),
		desc:     fs.Bool("desc", false, "sort descending"),
	}
}

func (f *viewFlags) apply(v *listview.View) {
	v.SetFilter(listview.Criteria{
		Role:     *f.role,
		Type:     *f.typ,
		SignedUp: *f.signedUp,
		Location: *f.location,
	})
	v.SetSearch(*f.search)
	if *f.sortKey != "" {
		dir := listview.SortAscending
		if *f.desc {
			dir = listview.SortDescending
		}
		v.SetSort(listview.SortKey(*f.sortKey), dir)
	}
}

func loadView(api *client.Client) (*listview.View, error) {
	_, list, err := api.Dashboard(context.Background())
	if err != nil {
		return nil, err
	}
	v := listview.NewView()
	v.SetUsers(list)
	return v, nil
}

func cmdUsers(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	vf := addViewFlags(fs)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	v, err := loadView(api)
	if err != nil {
		return err
	}
	vf.apply(v)
	v.SetPage(*page)

	rows := v.Rows()
	if len(rows) == 0 {
		fmt.Println("No users found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tCOUNTRY\tSIGNED UP\tEMAIL\tROLE\tUSER ID")
	for _, u := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.Name, u.TypeOrDefault(), u.Country, relativeSignup(u), u.Email, u.RoleOrDefault(), u.UserID)
	}
	w.Flush()

	shown := (v.Page()-1)*listview.PageSize + len(rows)
	fmt.Printf("\nShowing: %d of %d", shown, len(v.Filtered()))
	fmt.Printf("   pages: %s\n", pageLine(v))
	return nil
}

// relativeSignup mirrors the dashboard's coarse date display.
func relativeSignup(u models.PublicUser) string {
	t := u.SignedUpOrCreated()
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	months := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if months >= 12 {
		return "1 year ago"
	}
	return "6 months ago"
}

func pageLine(v *listview.View) string {
	var b strings.Builder
	if !v.HasPrev() {
		b.WriteString("[<] ")
	} else {
		b.WriteString("< ")
	}
	for _, n := range v.PageLinks() {
		if n == v.Page() {
			fmt.Fprintf(&b, "(%d) ", n)
		} else {
			fmt.Fprintf(&b, "%d ", n)
		}
	}
	if !v.HasNext() {
		b.WriteString("[>]")
	} else {
		b.WriteString(">")
	}
	return b.String()
}

func cmdExport(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	vf := addViewFlags(fs)
	format := fs.String("format", "csv", "export format (csv|xlsx|pdf|copy)")
	out := fs.String("o", "", "output file (default users_export.<ext>)")
	fs.Parse(args)

	v, err := loadView(api)
	if err != nil {
		return err
	}
	vf.apply(v)

	// export always acts on the full filtered view, not the visible page
	rows := v.Ordered()

	switch *format {
	case "copy":
		if err := clipboard.WriteAll(export.ClipboardText(rows)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Printf("Copied %d users to clipboard\n", len(rows))
		return nil
	case "csv":
		data, err := export.CSV(rows)
		if err != nil {
			return err
		}
		return writeExport(*out, "users_export.csv", data)
	case "xlsx":
		data, err := export.Excel(rows)
		if err != nil {
			return err
		}
		return writeExport(*out, "users_export.xlsx", data)
	case "pdf":
		data, err := export.PDF(rows)
		if err != nil {
			return err
		}
		return writeExport(*out, "users_report.pdf", data)
	}
	return fmt.Errorf("unknown export format %q", *format)
}

func writeExport(path, fallback string, data []byte) error {
	if path == "" {
		path = fallback
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func cmdSeed(api *client.Client, args []string) error {
	if err := api.Seed(context.Background()); err != nil {
		return err
	}
	fmt.Println("Database seeded successfully")
	return nil
}
