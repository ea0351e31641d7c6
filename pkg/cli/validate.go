package cli

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockroute/pkg/manifest"
	"github.com/getmockd/mockroute/pkg/parser"
)

// ValidateOutput is the JSON form of a validate run.
type ValidateOutput struct {
	Valid bool                 `json:"valid"`
	Files []FileValidateOutput `json:"files"`
}

// FileValidateOutput is the result for one manifest file.
type FileValidateOutput struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Routes int      `json:"routes"`
	Errors []string `json:"errors,omitempty"`
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|glob...]",
		Short: "Validate manifest files",
		Long: `Validate manifest files against the manifest schema and load each one.

Arguments are files or doublestar globs ("mocks/**/*.yml"). With no arguments
the manifest from the config file is validated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if a.cfg.Manifest == "" {
					return errNoManifest
				}
				args = []string{a.cfg.Manifest}
			}
			return a.runValidate(args)
		},
	}
}

func (a *app) runValidate(patterns []string) error {
	paths, err := expandPaths(patterns)
	if err != nil {
		return err
	}

	out := ValidateOutput{Valid: true, Files: make([]FileValidateOutput, 0, len(paths))}
	failed := 0
	for _, path := range paths {
		res := validateFile(path)
		if !res.Valid {
			out.Valid = false
			failed++
		}
		a.log.Debug("validated manifest", "path", path, "valid", res.Valid)
		out.Files = append(out.Files, res)
	}

	if err := a.printResult(out, func() error {
		for _, f := range out.Files {
			if f.Valid {
				fmt.Fprintf(a.stdout, "%s %s (%d routes)\n", a.colors.SuccessIcon(), f.Path, f.Routes)
				continue
			}
			fmt.Fprintf(a.stdout, "%s %s\n", a.colors.ErrorIcon(), f.Path)
			for _, msg := range f.Errors {
				fmt.Fprintf(a.stdout, "    %s\n", msg)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errValidationFailed, failed, len(paths))
	}
	return nil
}

// expandPaths resolves globs to manifest files. Plain paths are kept even
// when missing so they are reported as failures.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		if !isGlob(p) {
			paths = append(paths, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", p, err)
		}
		matches = slices.DeleteFunc(matches, func(m string) bool {
			_, err := parser.ForExtension(filepath.Ext(m))
			return err != nil
		})
		if len(matches) == 0 {
			return nil, fmt.Errorf("no manifest files match %q", p)
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return slices.Compact(paths), nil
}

func validateFile(path string) FileValidateOutput {
	res := FileValidateOutput{Path: path}

	doc, err := parser.ParseFile(path)
	if err != nil {
		res.Errors = []string{err.Error()}
		return res
	}
	if schema := manifest.CheckSchema(doc); !schema.IsValid() {
		for _, e := range schema.Errors {
			res.Errors = append(res.Errors, e.Error())
		}
		return res
	}
	m, err := manifest.LoadValue(doc)
	if err != nil {
		res.Errors = []string{err.Error()}
		return res
	}

	res.Valid = true
	res.Routes = m.Len()
	return res
}
