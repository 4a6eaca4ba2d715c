package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

var errPassphraseMismatch = errors.New("passphrases do not match")

func (o *Operator) handleKeystore(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return o.usage("keystore")
	}

	switch args[1] {
	case "list":
		return o.handleKeystoreList(ctx)
	case "new", "add", "show", "export", "remove":
		if len(args) < 3 {
			return fmt.Errorf("%w: keystore %s <name>", errUsage, args[1])
		}
	default:
		return fmt.Errorf("unknown keystore command: %s", args[1])
	}

	name := args[2]
	switch args[1] {
	case "new":
		return o.handleKeystoreNew(ctx, name)
	case "add":
		return o.handleKeystoreAdd(ctx, name)
	case "show":
		return o.handleKeystoreShow(ctx, name)
	case "export":
		return o.handleKeystoreExport(ctx, name)
	default:
		return o.handleKeystoreRemove(ctx, name)
	}
}

func (o *Operator) handleKeystoreNew(ctx context.Context, name string) error {
	pk, err := account.NewPrivateKey()
	if err != nil {
		return err
	}
	defer pk.Zero()

	if err := o.storeKey(ctx, name, pk); err != nil {
		return err
	}

	phrase, err := pk.Mnemonic()
	if err != nil {
		return err
	}
	fmt.Fprintln(o.out, "Write down this backup phrase; it is the only way to recover the account without the keystore:")
	o.printMnemonic(phrase)
	return nil
}

func (o *Operator) handleKeystoreAdd(ctx context.Context, name string) error {
	text, err := o.readSecret("Private key")
	if err != nil {
		return err
	}
	pk, err := account.ParsePrivateKey(text)
	if err != nil {
		return err
	}
	defer pk.Zero()

	return o.storeKey(ctx, name, pk)
}

func (o *Operator) storeKey(ctx context.Context, name string, pk *account.PrivateKey) error {
	store, err := o.keystore()
	if err != nil {
		return err
	}

	passphrase, err := o.readSecret("Passphrase")
	if err != nil {
		return err
	}
	confirm, err := o.readSecret("Repeat passphrase")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return errPassphraseMismatch
	}

	entry, err := store.Add(ctx, name, pk, passphrase)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Account stored: %s (%s)\n", entry.Name, entry.Address)
	return nil
}

func (o *Operator) handleKeystoreList(ctx context.Context) error {
	store, err := o.keystore()
	if err != nil {
		return err
	}
	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(o.out, "No accounts stored.")
		return nil
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Name", "Address", "Created"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Address, e.CreatedAt.UTC().Format(time.RFC3339)})
	}
	t.Render()
	return nil
}

func (o *Operator) handleKeystoreShow(ctx context.Context, name string) error {
	store, err := o.keystore()
	if err != nil {
		return err
	}
	e, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	t := o.newTable()
	t.AppendRows([]table.Row{
		{"ID", e.ID},
		{"Name", e.Name},
		{"Address", e.Address},
		{"Created", e.CreatedAt.UTC().Format(time.RFC3339)},
	})
	t.Render()
	return nil
}

func (o *Operator) handleKeystoreExport(ctx context.Context, name string) error {
	pk, err := o.unlock(ctx, name)
	if err != nil {
		return err
	}
	acct := account.AccountFromPrivateKey(pk)
	defer acct.Zero()

	o.printAccount(acct)
	return nil
}

func (o *Operator) handleKeystoreRemove(ctx context.Context, name string) error {
	store, err := o.keystore()
	if err != nil {
		return err
	}
	if err := store.Remove(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Account removed: %s\n", name)
	return nil
}

// unlock prompts for the passphrase of the stored account name.
func (o *Operator) unlock(ctx context.Context, name string) (*account.PrivateKey, error) {
	store, err := o.keystore()
	if err != nil {
		return nil, err
	}
	if _, err := store.Get(ctx, name); err != nil {
		return nil, err
	}
	passphrase, err := o.readSecret(fmt.Sprintf("Passphrase for %s", name))
	if err != nil {
		return nil, err
	}
	return store.Unlock(ctx, name, passphrase)
}
