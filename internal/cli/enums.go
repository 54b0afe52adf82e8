package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/reader"
)

// loadEnums reads a file mapping enum names to their values:
//
//	Role: [ADMIN, USER]
//	Status: [ACTIVE, DISABLED]
//
// JSON is accepted too, being a subset of YAML. An empty path yields a nil
// lookup.
func loadEnums(path string) (reader.EnumLookup, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "enums %s", path)
	}
	if err != nil {
		return nil, err
	}
	var enums map[string][]string
	if err := yaml.Unmarshal(data, &enums); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse enums %s", path)
	}
	return func(name string) ([]string, bool) {
		values, ok := enums[name]
		return values, ok
	}, nil
}

// enumsPath prefers the command flag over the configured file.
func (c *CLI) enumsPath(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Config.Server.Enums
}
