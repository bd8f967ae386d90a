package ruleerrors

import (
	"fmt"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrBadMerkleRoot = newRuleError("ErrBadMerkleRoot")

	// ErrLeafIndexOutOfRange indicates a merkle branch was requested for a
	// leaf that is not part of the tree.
	ErrLeafIndexOutOfRange = newRuleError("ErrLeafIndexOutOfRange")

	// ErrMalformedMerkleTree indicates a flattened merkle tree whose size
	// does not match the number of leaves it was supposedly built over.
	ErrMalformedMerkleTree = newRuleError("ErrMalformedMerkleTree")

	// ErrTransactionNotInBlock indicates a transaction hash that could not be
	// found among the leaves of a block's merkle tree.
	ErrTransactionNotInBlock = newRuleError("ErrTransactionNotInBlock")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrBadMerkleProof carries the root a merkle branch folded into and the
// root it was checked against.
type ErrBadMerkleProof struct {
	Calculated *externalapi.DomainHash
	Expected   *externalapi.DomainHash
}

func (e ErrBadMerkleProof) Error() string {
	return fmt.Sprintf("merkle branch folds into %s, expected %s", e.Calculated, e.Expected)
}

// NewErrBadMerkleProof returns a RuleError wrapping ErrBadMerkleProof
func NewErrBadMerkleProof(calculated, expected *externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: "ErrBadMerkleProof",
		inner:   ErrBadMerkleProof{Calculated: calculated, Expected: expected},
	})
}
