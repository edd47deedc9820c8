package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// File reads a pre-rendered test document. The format follows the file
// extension: .json and .yaml/.yml carry the {"blocks": ...} envelope, .hcl
// uses validate and match blocks.
type File struct {
	Path string
}

// Load implements oracle.Loader.
func (s *File) Load(ctx context.Context) (oracle.Document, error) {
	ctxlog.FromContext(ctx).Debug("Reading test document", "path", s.Path)

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return oracle.Document{}, errors.Read(s.Path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".json":
		return Decode(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".hcl":
		return DecodeHCL(s.Path, data)
	default:
		return oracle.Document{}, errors.Parse(nil, fmt.Sprintf("unsupported test document format %q (use .json, .yaml, .yml or .hcl)", ext))
	}
}

// DecodeYAML parses a YAML test document. It is converted to JSON first so
// it passes the same schema checks as evaluator output.
func DecodeYAML(data []byte) (oracle.Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return oracle.Document{}, errors.Parse(err, err.Error())
	}
	if v == nil {
		// An empty YAML file is an empty document.
		v = map[string]any{}
	}
	asJSON, err := json.Marshal(v)
	if err != nil {
		return oracle.Document{}, errors.Parse(err, err.Error())
	}
	return Decode(asJSON)
}
