// Command storerate is the terminal client of the store-rating platform. It
// keeps one session on disk (or in Redis) and plays the part of the user and
// administrator web apps.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/client/apiclient"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/navigation"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/core/session"
	"github.com/storerating/store-rating/internal/infrastructure/db/redis"
	"github.com/storerating/store-rating/internal/infrastructure/filestore"
	"github.com/storerating/store-rating/internal/pkg/config"
	"github.com/storerating/store-rating/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		stop()
		os.Exit(1)
	}
}

// cli bundles the wired client for one invocation. nav is the navigator of
// the selected app; userNav and adminNav guard the commands of each app.
type cli struct {
	out      io.Writer
	log      zerolog.Logger
	gate     *session.Gate
	api      *apiclient.Client
	nav      *navigation.Navigator
	userNav  *navigation.Navigator
	adminNav *navigation.Navigator
	admin    bool
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	admin := false
	if len(args) > 0 && (args[0] == "-admin" || args[0] == "--admin") {
		admin = true
		args = args[1:]
	}
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(out)
		return nil
	}

	cfg, err := config.LoadClient(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: errOut, Service: "storerate"})

	slot, closeSlot, err := openSlot(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSlot()

	gate := session.NewGate(ctx, session.NewStore(slot, log), log)
	userNav := navigation.NewNavigator(navigation.NewAuthorizer(gate, navigation.UserApp()))
	adminNav := navigation.NewNavigator(navigation.NewAuthorizer(gate, navigation.AdminApp()))

	c := &cli{
		out:      out,
		log:      log,
		gate:     gate,
		api:      apiclient.New(cfg.APIURL, cfg.Timeout, gate),
		nav:      userNav,
		userNav:  userNav,
		adminNav: adminNav,
		admin:    admin,
	}
	if admin {
		c.nav = adminNav
	}
	return c.dispatch(ctx, args[0], args[1:])
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch strings.ToLower(cmd) {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami()
	case "signup":
		return c.signup(ctx, args)
	case "stores":
		return c.stores(ctx, args)
	case "rate":
		return c.rate(ctx, args)
	case "password":
		return c.password(ctx, args)
	case "open":
		return c.open(args)
	case "admin":
		return c.adminCmd(ctx, args)
	case "echo":
		return c.echo(ctx, args)
	default:
		printUsage(c.out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openSlot(ctx context.Context, cfg *config.ClientConfig) (ports.SessionSlot, func(), error) {
	if cfg.SessionBackend == config.SessionBackendRedis {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionSlot(rdb, cfg.SessionPrefix), func() { _ = rdb.Close() }, nil
	}

	path := cfg.SessionFile
	if path == "" {
		path = filestore.DefaultPath()
	}
	slot, err := filestore.NewSlot(path)
	if err != nil {
		return nil, nil, err
	}
	return slot, func() {}, nil
}

// userMessage turns an error chain into the line shown to the user.
func userMessage(err error) string {
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, domain.ErrValidation):
		msg := err.Error()
		if i := strings.Index(msg, domain.ErrValidation.Error()+": "); i >= 0 {
			return msg[i+len(domain.ErrValidation.Error())+2:]
		}
		return msg
	}
	return err.Error()
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `storerate - store rating client

Usage:
  storerate [-admin] <command> [arguments]

Commands:
  login <email> <password> [-next <path>]   log in and resume <path>
  logout                                     end the session
  whoami                                     show the session identity
  signup -name -email -address -password -confirm
  stores [-name <text>] [-address <text>]    list stores with your rating
  rate <storeID> <1-5>                       rate a store
  password -current -new -confirm            change your password
  open <path>                                show where navigating to <path> lands
  admin dashboard|users|add-user|stores|add-store|ratings [flags]
  echo <json>                                post JSON to the passthrough endpoint

The -admin switch selects the administrator app for login and open.
Admin commands always check the administrator routes.

Environment Variables:
  STORERATE_API_URL          API base URL (default: http://localhost:8080)
  STORERATE_SESSION_BACKEND  file or redis (default: file)
  STORERATE_SESSION_FILE     session file (default: ~/.storerate/session.json)
  STORERATE_SESSION_PREFIX   redis key prefix (default: storerate:session:)
  REDIS_ADDR                 redis address for the redis backend
`)
}
