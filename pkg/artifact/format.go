package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

// Format is a document encoding for artifacts and source graphs.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCBOR, FormatYAML}

// ParseFormat validates a format name. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCBOR, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, cbor or yaml)", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbor":
		return FormatCBOR
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// cborEnc uses Core Deterministic Encoding so equal artifacts produce equal bytes.
var cborEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("artifact: CBOR encoder initialization failed: " + err.Error())
	}
	return em
}()

// marshal encodes v in format f. JSON output is indented for readable
// diffs of checked-in artifacts.
func marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return buf.Bytes(), nil
	case FormatCBOR:
		data, err := cborEnc.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

// unmarshal decodes data in format f into v.
func unmarshal(data []byte, v any, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatCBOR:
		err = cbor.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

// =============================================================================
// Artifact I/O
// =============================================================================

// Marshal encodes a in format f.
func Marshal(a *Artifact, f Format) ([]byte, error) {
	return marshal(a, f)
}

// Unmarshal decodes an artifact envelope. The graph itself is not decoded;
// call [Artifact.Decode] for that.
func Unmarshal(data []byte, f Format) (*Artifact, error) {
	var a Artifact
	if err := unmarshal(data, &a, f); err != nil {
		return nil, err
	}
	return &a, nil
}

// Write encodes a in format f to w.
func Write(w io.Writer, a *Artifact, f Format) error {
	data, err := Marshal(a, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes an artifact in format f from r. Read does not close r.
func Read(r io.Reader, f Format) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data, f)
}

// WriteFile writes a to path in the format implied by its extension.
// The file is created with 0644 permissions.
func WriteFile(path string, a *Artifact) error {
	data, err := Marshal(a, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads an artifact from path in the format implied by its extension.
func ReadFile(path string) (*Artifact, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	a, err := Unmarshal(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return data, nil
}
