// Package source loads regex test documents for the oracle.
//
// Every source reports failures with the load categories of internal/errors:
// KindProcess when the evaluator cannot produce output, KindRead when a
// pre-rendered document cannot be read and KindParse when the content is not
// a test document.
package source

import (
	"encoding/json"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/schema"
)

// Source kinds.
const (
	KindExec    = "exec"
	KindJsonnet = "jsonnet"
	KindFile    = "file"
)

// DefaultInput is the jsonnet file rendered by the default evaluator command.
const DefaultInput = "test/regex_test.jsonnet"

// DefaultCommand returns the evaluator invocation used when none is configured.
func DefaultCommand() []string {
	return []string{"jsonnet", DefaultInput}
}

type envelope struct {
	Blocks *oracle.Document `json:"blocks"`
}

// Decode parses evaluator output and extracts its blocks. A missing blocks
// field yields an empty document.
func Decode(data []byte) (oracle.Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return oracle.Document{}, errors.Parse(err, err.Error())
	}
	if err := schema.ValidateDocument(data); err != nil {
		return oracle.Document{}, errors.Parse(err, err.Error())
	}
	if env.Blocks == nil {
		return oracle.Document{}, nil
	}
	return *env.Blocks, nil
}
