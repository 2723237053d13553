package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/pathfinder-sheets/character"
	"github.com/uhppoted/pathfinder-sheets/config"
	"github.com/uhppoted/pathfinder-sheets/oauth"
	"github.com/uhppoted/pathfinder-sheets/store"
	"github.com/uhppoted/pathfinder-sheets/store/pstore"
	"github.com/uhppoted/pathfinder-sheets/store/sqlite"
)

const APP = "pathfinder-sheets"

const SHEETS = "https://www.googleapis.com/auth/spreadsheets.readonly"

// HISTORY is the console history file, kept in the working directory.
const HISTORY = ".console_history"

// Options are the global command line options and the configuration loaded at startup.
type Options struct {
	Config *config.Config
	Debug  bool
}

// command holds the options shared by every command that reads the character sheet.
type command struct {
	workdir     string
	credentials string
	store       string
	url         string
	debug       bool
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (credential store, exports)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the OAuth2 client 'credentials.json' file")
	flagset.StringVar(&c.store, "store", c.store, "Credential store file (.db, .sqlite or .sqlite3 for SQLite, otherwise JSON)")
	flagset.StringVar(&c.url, "url", c.url, "Character sheet spreadsheet URL. Defaults to the last authorised spreadsheet")

	return flagset
}

// configure returns a copy of the startup configuration with the command line flags applied.
func (c *command) configure(options *Options) *config.Config {
	conf := config.Config{}
	if options != nil && options.Config != nil {
		conf = *options.Config
	}

	if v := strings.TrimSpace(c.workdir); v != "" {
		conf.Workdir = v
	}

	if v := strings.TrimSpace(c.credentials); v != "" {
		conf.Credentials = v
	}

	if v := strings.TrimSpace(c.store); v != "" {
		conf.Store = v
	}

	if v := strings.TrimSpace(c.url); v != "" {
		conf.URL = v
	}

	if options != nil && options.Debug {
		conf.Debug = true
	}

	c.debug = conf.Debug

	return &conf
}

// character loads the stored credential and retrieves the character sheet.
func (c *command) character(ctx context.Context, conf *config.Config) (*character.Sheet, error) {
	kv, err := openStore(conf.StoreFile())
	if err != nil {
		return nil, err
	}

	defer kv.Close()

	manager, err := newManager(conf, kv)
	if err != nil {
		return nil, err
	}

	if _, err := manager.Load(ctx); err != nil {
		if oauth.NeedsAuthorization(err) {
			return nil, fmt.Errorf("%v - run '%s authorise' to grant access to the character sheet", err, APP)
		}

		return nil, fmt.Errorf("authentication/authorization error (%v)", err)
	}

	spreadsheet, err := documentID(ctx, conf, kv)
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, character.StatsRange)
	}

	client, err := manager.Client(ctx)
	if err != nil {
		return nil, err
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	response, err := google.Spreadsheets.Values.Get(spreadsheet, character.StatsRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	if len(response.Values) == 0 {
		return nil, fmt.Errorf("no data in spreadsheet/range")
	}

	grid, err := character.FromValueRange(response)
	if err != nil {
		return nil, err
	}

	return character.Parse(grid)
}

// openStore opens the credential store, choosing the backend from the file extension.
func openStore(file string) (store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.Open(file)

	default:
		return pstore.Open(file)
	}
}

func oauthConfig(conf *config.Config) (*oauth2.Config, error) {
	if strings.TrimSpace(conf.Credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option")
	}

	b, err := os.ReadFile(conf.Credentials)
	if err != nil {
		return nil, fmt.Errorf("unable to read OAuth2 client credentials (%v)", err)
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return nil, fmt.Errorf("invalid OAuth2 client credentials (%v)", err)
	}

	return config, nil
}

func newManager(conf *config.Config, kv store.Store, options ...oauth.Option) (*oauth.Manager, error) {
	config, err := oauthConfig(conf)
	if err != nil {
		return nil, err
	}

	return oauth.NewManager(config, kv, append(managerOptions(conf), options...)...)
}

func managerOptions(conf *config.Config) []oauth.Option {
	return []oauth.Option{
		oauth.WithLogger(newLogger(conf.Debug)),
		oauth.WithExchangeTimeout(conf.ExchangeTimeout),
		oauth.WithPromptTimeout(conf.PromptTimeout),
		oauth.WithStoreAccessToken(conf.StoreAccessToken),
	}
}

// documentID resolves the spreadsheet from the --url option, falling back to the document
// ID saved by the last 'authorise'.
func documentID(ctx context.Context, conf *config.Config, kv store.Store) (string, error) {
	if strings.TrimSpace(conf.URL) != "" {
		return spreadsheetID(conf.URL)
	}

	id, ok, err := store.Get(ctx, kv, store.DocumentID)
	if err != nil {
		return "", err
	} else if !ok || strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("--url is a required option")
	}

	return id, nil
}

func spreadsheetID(url string) (string, error) {
	match := spreadsheetURL.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// interruptible returns a context that is cancelled by CTRL-C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
