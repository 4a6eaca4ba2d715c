package account

// Account bundles a private key with its derived view key and address.
type Account struct {
	privateKey *PrivateKey
	viewKey    *ViewKey
	address    Address
}

// NewAccount creates an account with a freshly sampled private key.
func NewAccount() (*Account, error) {
	pk, err := NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return AccountFromPrivateKey(pk), nil
}

// AccountFromSeed creates the deterministic account for seed.
func AccountFromSeed(seed uint64) (*Account, error) {
	pk, err := PrivateKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return AccountFromPrivateKey(pk), nil
}

// AccountFromPrivateKey derives the view key and address of pk.
// The account keeps a reference to pk; zeroing either zeroes both.
func AccountFromPrivateKey(pk *PrivateKey) *Account {
	return &Account{
		privateKey: pk,
		viewKey:    NewViewKey(pk),
		address:    AddressFromPrivateKey(pk),
	}
}

// ParseAccount restores an account from its canonical private key string.
func ParseAccount(privateKey string) (*Account, error) {
	pk, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return AccountFromPrivateKey(pk), nil
}

func (a *Account) PrivateKey() *PrivateKey { return a.privateKey }
func (a *Account) ViewKey() *ViewKey       { return a.viewKey }
func (a *Account) Address() Address        { return a.address }

// Sign signs message with the account's private key.
func (a *Account) Sign(message []byte) []byte {
	return a.privateKey.Sign(message)
}

// Verify checks a signature over message against this account's address.
func (a *Account) Verify(message, signature []byte) bool {
	return Verify(a.address, message, signature)
}

// Zero wipes the private and view keys held by the account.
func (a *Account) Zero() {
	a.privateKey.Zero()
	a.viewKey.Zero()
}
