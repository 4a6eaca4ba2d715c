package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/c-bata/go-prompt"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/snehendu098/ghost/wallet/pkg/keystore"
	"github.com/snehendu098/ghost/wallet/pkg/log"
)

var errUsage = errors.New("usage")

// Operator runs wallet commands, either once from the command line or
// repeatedly from the interactive shell.
type Operator struct {
	cfg    Config
	lg     log.Logger
	out    io.Writer
	secret SecretReader

	store   *keystore.Store
	closeDB func() error

	exitCh   chan struct{}
	exitOnce sync.Once
}

func NewOperator(cfg Config, lg log.Logger, out io.Writer, secret SecretReader) *Operator {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return &Operator{
		cfg:    cfg,
		lg:     lg,
		out:    out,
		secret: secret,
		exitCh: make(chan struct{}),
	}
}

// Close releases the keystore database, if it was opened.
func (o *Operator) Close() {
	if o.closeDB == nil {
		return
	}
	if err := o.closeDB(); err != nil {
		o.lg.Warn("failed to close keystore", "error", err)
	}
	o.closeDB = nil
}

func (o *Operator) Wait() <-chan struct{} {
	return o.exitCh
}

func (o *Operator) exit() {
	o.exitOnce.Do(func() { close(o.exitCh) })
}

// Execute is the go-prompt executor.
func (o *Operator) Execute(s string) {
	args := strings.Fields(s)
	if len(args) == 0 {
		return
	}
	if args[0] == "serve" {
		fmt.Fprintln(o.out, "serve runs in the foreground; start it as `aleo-wallet serve`.")
		return
	}
	if err := o.Run(context.Background(), args); err != nil {
		o.printError(err)
	}
}

// Run executes a single command.
func (o *Operator) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return o.usage("help")
	}

	switch args[0] {
	case "new":
		return o.handleNew()
	case "from-seed":
		return o.handleFromSeed(args)
	case "inspect":
		return o.handleInspect(args)
	case "address":
		return o.handleAddress(args)
	case "sign":
		return o.handleSign(ctx, args)
	case "verify":
		return o.handleVerify(args)
	case "mnemonic":
		return o.handleMnemonic(args)
	case "recover":
		return o.handleRecover(args)
	case "keystore":
		return o.handleKeystore(ctx, args)
	case "serve":
		return o.handleServe(ctx)
	case "help":
		o.printHelp()
		return nil
	case "exit", "quit":
		o.exit()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

type command struct {
	name  string
	usage string
	desc  string
}

var commands = []command{
	{"new", "new", "Generate a new account"},
	{"from-seed", "from-seed <u64>", "Derive a deterministic test account from a 64-bit seed"},
	{"inspect", "inspect [private_key]", "Show the view key and address of a private key"},
	{"address", "address [view_key]", "Show the address of a view key"},
	{"sign", "sign [@name] <message>", "Sign a message with a private key or a keystore account"},
	{"verify", "verify <address> <0xsignature> <message>", "Verify a signature"},
	{"mnemonic", "mnemonic [private_key]", "Show the 24-word backup phrase of a private key"},
	{"recover", "recover [words...]", "Recover an account from its backup phrase"},
	{"keystore", "keystore <new|add|list|show|export|remove> [name]", "Manage passphrase-sealed accounts"},
	{"serve", "serve", "Run the verification HTTP service"},
	{"help", "help", "Show this help"},
	{"exit", "exit", "Exit the shell"},
}

var keystoreCommands = []prompt.Suggest{
	{Text: "new", Description: "Generate an account and store it"},
	{Text: "add", Description: "Store an existing private key"},
	{Text: "list", Description: "List stored accounts"},
	{Text: "show", Description: "Show a stored account"},
	{Text: "export", Description: "Unlock and print a stored private key"},
	{Text: "remove", Description: "Delete a stored account"},
}

func (o *Operator) Complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(o.complete(d), d.GetWordBeforeCursor(), true)
}

func (o *Operator) complete(d prompt.Document) []prompt.Suggest {
	args := strings.Split(d.TextBeforeCursor(), " ")

	if len(args) < 2 {
		s := make([]prompt.Suggest, 0, len(commands))
		for _, c := range commands {
			s = append(s, prompt.Suggest{Text: c.name, Description: c.desc})
		}
		return s
	}

	if len(args) < 3 {
		switch args[0] {
		case "keystore":
			return keystoreCommands
		case "sign":
			return o.accountSuggestions("@")
		default:
			return nil
		}
	}

	if len(args) < 4 && args[0] == "keystore" {
		switch args[1] {
		case "show", "export", "remove":
			return o.accountSuggestions("")
		}
	}
	return nil
}

// accountSuggestions lists stored account names, each prefixed with prefix.
func (o *Operator) accountSuggestions(prefix string) []prompt.Suggest {
	store, err := o.keystore()
	if err != nil {
		return nil
	}
	entries, err := store.List(context.Background())
	if err != nil {
		return nil
	}

	s := make([]prompt.Suggest, 0, len(entries))
	for _, e := range entries {
		s = append(s, prompt.Suggest{
			Text:        prefix + e.Name,
			Description: fmt.Sprintf("Account %s", e.Address),
		})
	}
	return s
}

// keystore opens the configured keystore on first use.
func (o *Operator) keystore() (*keystore.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	db, err := keystore.ConnectToDB(o.cfg.Keystore, o.lg)
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}

	o.store = keystore.NewStore(db, o.lg)
	o.closeDB = sqlDB.Close
	return o.store, nil
}

func (o *Operator) readSecret(label string) (string, error) {
	if o.secret == nil {
		return "", fmt.Errorf("no terminal available to read %s", label)
	}
	v, err := o.secret(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s cannot be empty", label)
	}
	return v, nil
}

// argOrSecret returns args[i] when present and prompts for it otherwise.
func (o *Operator) argOrSecret(args []string, i int, label string) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	return o.readSecret(label)
}

func (o *Operator) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	return t
}

func (o *Operator) usage(name string) error {
	for _, c := range commands {
		if c.name == name {
			return fmt.Errorf("%w: %s", errUsage, c.usage)
		}
	}
	return errUsage
}

func (o *Operator) printHelp() {
	t := o.newTable()
	t.AppendHeader(table.Row{"Command", "Description"})
	for _, c := range commands {
		t.AppendRow(table.Row{c.usage, c.desc})
	}
	t.Render()
}

func (o *Operator) printError(err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintf(o.out, "Usage: %s\n", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		return
	}
	fmt.Fprintf(o.out, "Error: %s\n", err)
}
