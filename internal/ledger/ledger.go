package ledger

import "errors"

// Address identifies an account on the ledger. It is plain data: holding an
// address grants no authority over the account it names.
type Address string

// Signer is proof that the current request was authorized by the holder of an
// account's credentials. It is deliberately opaque: the address is unexported
// so a Signer cannot be forged from an Address by other packages.
//
// NewSigner must only be called by the authentication layer, after the
// caller's credentials have been verified.
type Signer struct {
	addr Address
}

// NewSigner mints a signer for a verified account.
func NewSigner(addr Address) Signer {
	return Signer{addr: addr}
}

// Address returns the account the signer proves control of.
func (s Signer) Address() Address {
	return s.addr
}

var (
	// ErrAlreadyExists is returned when an account tries to publish a second
	// post. The first post wins; nothing is overwritten.
	ErrAlreadyExists = errors.New("ledger: post already exists for account")

	// ErrNotFound is returned when the target account has no post.
	ErrNotFound = errors.New("ledger: no post under account")
)

// PostView is a read-only copy of a post's state. Mutating it has no effect
// on the registry.
type PostView struct {
	ID     uint64    `json:"id"`
	Owner  Address   `json:"owner"`
	Likes  uint64    `json:"likes"`
	Likers []Address `json:"likers,omitempty"`
}
