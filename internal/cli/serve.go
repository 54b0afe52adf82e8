package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/reader"
	"github.com/matzehuels/paramgraph/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		enums string
	)

	cmd := &cobra.Command{
		Use:   "serve <artifact>",
		Short: "Answer lookups against an artifact over HTTP",
		Long: `Serve the roots, input nodes and output nodes of an artifact as JSON.

Routes:
  GET /roots                          root keys
  GET /roots/{key}                    one root entry
  GET /inputs/{id}                    an input node and its edges
  GET /inputs/{id}/edges/{field}      one input edge, enum values resolved
  GET /outputs/{id}                   an output node and its edges
  GET /outputs/{id}/edges/{field}     one output edge
  GET /stats                          counts, format and digest
  GET /healthz                        liveness`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			a, err := artifact.ReadFile(args[0])
			if err != nil {
				return err
			}
			g, err := a.Decode()
			if err != nil {
				return err
			}
			format, blobSize, err := a.Header()
			if err != nil {
				return err
			}
			lookup, err := loadEnums(c.enumsPath(enums))
			if err != nil {
				return err
			}

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(reader.New(g, lookup),
				server.WithLogger(logger),
				server.WithInfo(artifact.Info{
					Format:   format,
					BlobSize: blobSize,
					TextSize: len(a.Graph),
					Digest:   a.Digest,
					Stats:    g.Stats(),
				}),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&enums, "enums", "", "YAML or JSON file mapping enum names to values")

	return cmd
}
