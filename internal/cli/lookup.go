package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/reader"
	"github.com/matzehuels/paramgraph/pkg/server"
)

// lookupCommand creates the lookup command.
func (c *CLI) lookupCommand() *cobra.Command {
	var (
		enums  string
		output bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <artifact> <root> [field...]",
		Short: "Walk a root and a field path through an artifact",
		Long: `Look up a root entry, then follow fields through nested input objects
(or, with --output, through nested selections) and print what the last
field accepts as JSON.`,
		Example: `  paramgraph lookup app.pg.json User.findMany
  paramgraph lookup app.pg.json User.findMany where email
  paramgraph lookup --output app.pg.json User.findMany posts author`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readArtifact(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := a.Decode()
			if err != nil {
				return err
			}
			lookup, err := loadEnums(c.enumsPath(enums))
			if err != nil {
				return err
			}
			r := reader.New(g, lookup)

			var v any
			if output {
				v, err = lookupOutput(r, args[1], args[2:])
			} else {
				v, err = lookupInput(r, args[1], args[2:])
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVar(&enums, "enums", "", "YAML or JSON file mapping enum names to values")
	cmd.Flags().BoolVar(&output, "output", false, "follow output selections instead of input fields")

	return cmd
}

// lookupInput follows fields from the root's argument node. An empty path
// returns the root entry itself.
func lookupInput(r *reader.Reader, key string, fields []string) (any, error) {
	entry, ok := r.Root(key)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no root %q", key)
	}
	if len(fields) == 0 {
		return server.RootView{Key: key, ArgsNodeID: entry.ArgsNodeID, OutputNodeID: entry.OutputNodeID}, nil
	}
	node, ok := r.InputNode(entry.ArgsNodeID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "root %q takes no parameterizable arguments", key)
	}
	for i, field := range fields {
		e, ok := r.InputEdge(node, field)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "%s: no input field %q", pathString(key, fields[:i]), field)
		}
		if i == len(fields)-1 {
			return server.NewInputEdgeView(r, field, e), nil
		}
		if node, ok = r.InputNode(e.ChildNodeID); !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "%s has no nested fields", pathString(key, fields[:i+1]))
		}
	}
	panic("unreachable")
}

// lookupOutput follows fields from the root's output node.
func lookupOutput(r *reader.Reader, key string, fields []string) (any, error) {
	entry, ok := r.Root(key)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no root %q", key)
	}
	if len(fields) == 0 {
		return server.RootView{Key: key, ArgsNodeID: entry.ArgsNodeID, OutputNodeID: entry.OutputNodeID}, nil
	}
	node, ok := r.OutputNode(entry.OutputNodeID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "root %q has no selection", key)
	}
	for i, field := range fields {
		e, ok := r.OutputEdge(node, field)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "%s: no output field %q", pathString(key, fields[:i]), field)
		}
		if i == len(fields)-1 {
			return server.OutputEdgeView{Field: field, ArgsNodeID: e.ArgsNodeID, OutputNodeID: e.OutputNodeID}, nil
		}
		if node, ok = r.OutputNode(e.OutputNodeID); !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "%s has no nested selection", pathString(key, fields[:i+1]))
		}
	}
	panic("unreachable")
}

func pathString(key string, fields []string) string {
	return strings.Join(append([]string{key}, fields...), ".")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
