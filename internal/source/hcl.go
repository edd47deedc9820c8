package source

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// hclDocument is the decoding target for .hcl test documents:
//
//	validate "unclosed group" {
//	  pattern   = "("
//	  py_expect = false
//	}
//
//	match "plus" {
//	  pattern = "ab+c"
//	  subject = "xabbbcZ"
//	  expect  = true
//	}
type hclDocument struct {
	Validate []hclValidateCase `hcl:"validate,block"`
	Match    []hclMatchCase    `hcl:"match,block"`
}

type hclValidateCase struct {
	Name     string `hcl:"name,label"`
	Pattern  string `hcl:"pattern,attr"`
	PyExpect *bool  `hcl:"py_expect,optional"`
}

type hclMatchCase struct {
	Name    string `hcl:"name,label"`
	Pattern string `hcl:"pattern,attr"`
	Subject string `hcl:"subject,attr"`
	Expect  bool   `hcl:"expect,optional"`
}

// DecodeHCL parses an HCL test document. Expressions may use the string
// helpers in hclEvalContext to build long or unusual subjects.
func DecodeHCL(filename string, data []byte) (oracle.Document, error) {
	var parsed hclDocument
	if err := hclsimple.Decode(filename, data, hclEvalContext(), &parsed); err != nil {
		return oracle.Document{}, errors.Parse(err, err.Error())
	}

	doc := oracle.Document{
		Validate: make([]oracle.ValidateCase, 0, len(parsed.Validate)),
		Match:    make([]oracle.MatchCase, 0, len(parsed.Match)),
	}
	for _, c := range parsed.Validate {
		doc.Validate = append(doc.Validate, oracle.ValidateCase{
			Name:     c.Name,
			Pattern:  c.Pattern,
			PyExpect: c.PyExpect,
		})
	}
	for _, c := range parsed.Match {
		doc.Match = append(doc.Match, oracle.MatchCase{
			Name:    c.Name,
			Pattern: c.Pattern,
			Subject: c.Subject,
			Expect:  c.Expect,
		})
	}
	return doc, nil
}

func hclEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"newline": cty.StringVal("\n"),
			"tab":     cty.StringVal("\t"),
		},
		Functions: map[string]function.Function{
			"format":  stdlib.FormatFunc,
			"join":    stdlib.JoinFunc,
			"lower":   stdlib.LowerFunc,
			"upper":   stdlib.UpperFunc,
			"replace": stdlib.ReplaceFunc,
			"reverse": stdlib.ReverseFunc,
			"repeat":  repeatFunc,
		},
	}
}

// repeatFunc returns str concatenated count times.
var repeatFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "str", Type: cty.String},
		{Name: "count", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var n int
		if err := gocty.FromCtyValue(args[1], &n); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		if n < 0 {
			return cty.NilVal, function.NewArgErrorf(1, "count must not be negative")
		}
		return cty.StringVal(strings.Repeat(args[0].AsString(), n)), nil
	},
})
