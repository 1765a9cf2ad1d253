package params

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

func blockLabel(block string) string {
	if block == "" {
		return "<root>"
	}
	return block
}

// TypeError reports a value that cannot be converted to its declared type.
type TypeError struct {
	Block  string
	Param  string
	Want   cty.Type
	Source string
	Err    error
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("block %q: parameter %q: expected %s: %v", blockLabel(e.Block), e.Param, e.Want.FriendlyName(), e.Err)
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	return msg
}

func (e *TypeError) Unwrap() error { return e.Err }

// MissingRequiredError reports a required parameter the block never supplied.
type MissingRequiredError struct {
	Block string
	Param string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("block %q: missing required parameter %q", blockLabel(e.Block), e.Param)
}
