package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockroute/pkg/manifest"
	"github.com/getmockd/mockroute/pkg/value"
)

func (a *app) exportCommand() *cobra.Command {
	var (
		manifestFlag string
		format       string
		outputFile   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the normalized manifest",
		Long: `Print the normalized manifest: shorthands expanded, method maps split into
definitions, routes in matching order. The output loads back to the same
manifest.`,
		Example: `  mockroute export --manifest mocks/api.yml
  mockroute export --manifest 'mocks/**/*.yml' --format yaml -o merged.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonOutput {
				format = "json"
			}
			m, err := a.loadManifest(a.manifestPath(manifestFlag))
			if err != nil {
				return err
			}
			data, err := encodeManifest(m, format)
			if err != nil {
				return err
			}
			if outputFile != "" {
				if err := os.WriteFile(outputFile, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outputFile, err)
				}
				a.log.Info("exported manifest", "path", outputFile, "routes", m.Len())
				return nil
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&manifestFlag, "manifest", "m", "", "Manifest file or glob (default: manifest from config)")
	f.StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	f.StringVarP(&outputFile, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func encodeManifest(m *manifest.Manifest, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := value.MarshalIndent(m.ToValue(), "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return m.ToYAML()
	default:
		return nil, fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}
}
