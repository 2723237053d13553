package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/oauth"
	"github.com/uhppoted/pathfinder-sheets/store"
)

var AuthoriseCmd = Authorise{
	command: command{},
	prompt:  false,
}

type Authorise struct {
	command
	prompt bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises pathfinder-sheets to read a Google Sheets character sheet"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file> --url <url> [--prompt]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises pathfinder-sheets to read a Google Sheets character sheet. The Google")
	fmt.Println("  consent page is opened in the browser and the authorisation code is received on a")
	fmt.Println("  local redirect. With --prompt the consent URL is printed and the code is pasted")
	fmt.Println("  back into the console instead.")
	fmt.Println()
	fmt.Println("  The refresh token and the spreadsheet ID are kept in the credential store so that")
	fmt.Println("  later commands run without a browser.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    pathfinder-sheets authorise --credentials "credentials.json" --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("authorise")

	flagset.BoolVar(&cmd.prompt, "prompt", cmd.prompt, "Prints the authorisation URL and reads the authorisation code from the console")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)
	conf := cmd.configure(options)

	// ... check parameters
	if strings.TrimSpace(conf.URL) == "" {
		return fmt.Errorf("--url is a required option")
	}

	spreadsheet, err := spreadsheetID(conf.URL)
	if err != nil {
		return err
	}

	config, err := oauthConfig(conf)
	if err != nil {
		return err
	}

	var codes oauth.CodeSource
	if cmd.prompt {
		codes = oauth.PromptCodeSource{In: os.Stdin, Out: os.Stdout}
	} else {
		config.RedirectURL = conf.RedirectURL()
		codes = oauth.LoopbackCodeSource{
			Addr:    conf.Redirect,
			Browser: browser(conf.Browser),
			Out:     os.Stdout,
		}
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  redirect:%s", spreadsheet, config.RedirectURL)
	}

	kv, err := openStore(conf.StoreFile())
	if err != nil {
		return fmt.Errorf("unable to open credential store (%v)", err)
	}

	defer kv.Close()

	manager, err := oauth.NewManager(config, kv, append(managerOptions(conf), oauth.WithCodeSource(codes))...)
	if err != nil {
		return err
	}

	// ... CTRL-C cancels the wait for authorisation
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	credential, err := manager.Authorize(ctx)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	if err := manager.Save(ctx, credential); err != nil {
		return fmt.Errorf("unable to save credential (%v)", err)
	}

	if err := store.Set(ctx, kv, store.DocumentID, spreadsheet); err != nil {
		return fmt.Errorf("unable to save spreadsheet ID (%v)", err)
	}

	infof("Authorised access to spreadsheet %s (credential store %s)", spreadsheet, conf.StoreFile())

	return nil
}

// browser returns a function that opens a URL with the platform 'open' command.
func browser(command string) func(string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	return func(url string) error {
		return exec.Command(command, url).Start()
	}
}
