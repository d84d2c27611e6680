package cexpr

import (
	"errors"
	"strconv"
)

// ErrSyntax is the error that every parse error matches under errors.Is.
var ErrSyntax = errors.New("invalid expression")

// Reason is a coarse classification of a parse failure.
type Reason int8

const (
	// ReasonEmpty means the input had no tokens.
	ReasonEmpty Reason = iota + 1
	// ReasonBadToken means the input contained a character that cannot begin
	// any token.
	ReasonBadToken
	// ReasonUnexpected means a token appeared where no term can start, such
	// as an operator or an unknown name, or the input ended where a term was
	// required.
	ReasonUnexpected
	// ReasonUnmatchedParen means an open parenthesis was never closed.
	ReasonUnmatchedParen
	// ReasonIncompleteCall means a function name was not followed by a
	// parenthesized argument.
	ReasonIncompleteCall
	// ReasonTrailing means a complete expression was followed by more tokens.
	ReasonTrailing
	// ReasonTooDeep means the expression exceeded the maximum depth.
	ReasonTooDeep
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty expression"
	case ReasonBadToken:
		return "invalid character"
	case ReasonUnexpected:
		return "unexpected token"
	case ReasonUnmatchedParen:
		return "unmatched parenthesis"
	case ReasonIncompleteCall:
		return "incomplete function call"
	case ReasonTrailing:
		return "extra input after expression"
	case ReasonTooDeep:
		return "expression nested too deeply"
	default:
		return "Reason(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseError is the error returned for any input that is not a valid
// expression.
type ParseError struct {
	// Reason is the kind of failure.
	Reason Reason
	// Token is the token the parser was looking at when it failed, or the
	// empty string if it had reached the end of the input.
	Token string
}

func (err *ParseError) Error() string {
	if err.Token == "" {
		return err.Reason.String()
	}
	return err.Reason.String() + " at " + strconv.Quote(err.Token)
}

// Unwrap returns ErrSyntax.
func (err *ParseError) Unwrap() error {
	return ErrSyntax
}

var _ error = (*ParseError)(nil)
