package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/snehendu098/ghost/wallet/pkg/account"
	"github.com/snehendu098/ghost/wallet/pkg/sign"
)

func (o *Operator) handleNew() error {
	acct, err := account.NewAccount()
	if err != nil {
		return err
	}
	defer acct.Zero()

	o.printAccount(acct)
	return nil
}

func (o *Operator) handleFromSeed(args []string) error {
	if len(args) < 2 {
		return o.usage("from-seed")
	}
	seed, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: must be an unsigned 64-bit integer", args[1])
	}

	acct, err := account.AccountFromSeed(seed)
	if err != nil {
		return err
	}
	defer acct.Zero()

	o.printAccount(acct)
	return nil
}

func (o *Operator) handleInspect(args []string) error {
	text, err := o.argOrSecret(args, 1, "Private key")
	if err != nil {
		return err
	}
	acct, err := account.ParseAccount(text)
	if err != nil {
		return err
	}
	defer acct.Zero()

	o.printAccount(acct)
	return nil
}

func (o *Operator) handleAddress(args []string) error {
	text, err := o.argOrSecret(args, 1, "View key")
	if err != nil {
		return err
	}
	vk, err := account.ParseViewKey(text)
	if err != nil {
		return err
	}
	defer vk.Zero()

	fmt.Fprintln(o.out, account.AddressFromViewKey(vk))
	return nil
}

// handleSign signs with a stored account ("sign @name msg") or with a private
// key read from the terminal ("sign msg").
func (o *Operator) handleSign(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return o.usage("sign")
	}

	var (
		pk  *account.PrivateKey
		msg string
		err error
	)
	if name, ok := strings.CutPrefix(args[1], "@"); ok {
		if len(args) < 3 {
			return o.usage("sign")
		}
		msg = strings.Join(args[2:], " ")
		pk, err = o.unlock(ctx, name)
	} else {
		msg = strings.Join(args[1:], " ")
		var text string
		if text, err = o.readSecret("Private key"); err == nil {
			pk, err = account.ParsePrivateKey(text)
		}
	}
	if err != nil {
		return err
	}
	defer pk.Zero()

	signer := sign.NewAleoSignerFromKey(pk)
	sig, err := signer.Sign([]byte(msg))
	if err != nil {
		return err
	}

	t := o.newTable()
	t.AppendRows([]table.Row{
		{"Address", signer.PublicKey().Address()},
		{"Message", msg},
		{"Signature", sig},
	})
	t.Render()
	return nil
}

func (o *Operator) handleVerify(args []string) error {
	if len(args) < 4 {
		return o.usage("verify")
	}
	addr, err := sign.NewAleoAddressFromString(args[1])
	if err != nil {
		return err
	}
	msg := []byte(strings.Join(args[3:], " "))

	valid := false
	if sig, err := sign.ParseSignature(args[2]); err == nil {
		valid = sign.Verify(addr, msg, sig)
	}

	if valid {
		fmt.Fprintln(o.out, "Signature is valid.")
	} else {
		fmt.Fprintln(o.out, "Signature is NOT valid.")
	}
	return nil
}

func (o *Operator) handleMnemonic(args []string) error {
	text, err := o.argOrSecret(args, 1, "Private key")
	if err != nil {
		return err
	}
	pk, err := account.ParsePrivateKey(text)
	if err != nil {
		return err
	}
	defer pk.Zero()

	phrase, err := pk.Mnemonic()
	if err != nil {
		return err
	}
	o.printMnemonic(phrase)
	return nil
}

func (o *Operator) handleRecover(args []string) error {
	phrase := strings.Join(args[1:], " ")
	if phrase == "" {
		var err error
		if phrase, err = o.readSecret("Backup phrase"); err != nil {
			return err
		}
	}

	pk, err := account.PrivateKeyFromMnemonic(phrase)
	if err != nil {
		return err
	}
	acct := account.AccountFromPrivateKey(pk)
	defer acct.Zero()

	o.printAccount(acct)
	return nil
}

func (o *Operator) printAccount(acct *account.Account) {
	t := o.newTable()
	t.AppendRows([]table.Row{
		{"Private Key", acct.PrivateKey().String()},
		{"View Key", acct.ViewKey().String()},
		{"Address", acct.Address()},
	})
	t.Render()
}

func (o *Operator) printMnemonic(phrase string) {
	words := strings.Fields(phrase)
	t := o.newTable()
	t.AppendHeader(table.Row{"#", "Word", "#", "Word"})
	half := (len(words) + 1) / 2
	for i := 0; i < half; i++ {
		row := table.Row{i + 1, words[i], "", ""}
		if j := i + half; j < len(words) {
			row[2], row[3] = j+1, words[j]
		}
		t.AppendRow(row)
	}
	t.Render()
}
