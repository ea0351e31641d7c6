package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockroute/pkg/cli/internal/output"
	"github.com/getmockd/mockroute/pkg/manifest"
)

// RouteOutput describes one route and its definitions in matching order.
type RouteOutput struct {
	Route       string             `json:"route"`
	Definitions []DefinitionOutput `json:"definitions"`
}

// DefinitionOutput summarizes one definition's match block and status.
type DefinitionOutput struct {
	Method    string            `json:"method,omitempty"`
	Query     []string          `json:"query,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	// Status is 0 when the definition leaves it to the request method.
	Status int `json:"status,omitempty"`
}

func (a *app) routesCommand() *cobra.Command {
	var manifestFlag string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes in matching order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest(a.manifestPath(manifestFlag))
			if err != nil {
				return err
			}
			return a.printRoutes(m)
		},
	}
	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Manifest file or glob (default: manifest from config)")
	return cmd
}

func (a *app) printRoutes(m *manifest.Manifest) error {
	routes := describeRoutes(m)
	return a.printResult(routes, func() error {
		w := output.Table(a.stdout)
		fmt.Fprintln(w, "ROUTE\tMETHOD\tQUERY\tVARIABLES\tSTATUS")
		for _, r := range routes {
			for _, d := range r.Definitions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.Route,
					orDash(d.Method, "*"),
					orDash(strings.Join(d.Query, ","), "-"),
					orDash(formatVariables(d.Variables), "-"),
					formatStatus(d.Status),
				)
			}
		}
		return w.Flush()
	})
}

func describeRoutes(m *manifest.Manifest) []RouteOutput {
	routes := make([]RouteOutput, 0, m.Len())
	for _, route := range m.Routes() {
		defs, _ := m.Get(route)
		r := RouteOutput{Route: route, Definitions: make([]DefinitionOutput, 0, len(defs))}
		for _, def := range defs {
			r.Definitions = append(r.Definitions, describeDefinition(def))
		}
		routes = append(routes, r)
	}
	return routes
}

func describeDefinition(def *manifest.Definition) DefinitionOutput {
	var d DefinitionOutput
	if def.HasCode {
		d.Status = def.Code
	}
	if def.Match == nil {
		return d
	}
	d.Method = strings.ToUpper(def.Match.Method)
	if def.Match.Query != nil {
		d.Query = def.Match.Query.Keys()
	}
	if def.Match.Variables.Len() > 0 {
		d.Variables = make(map[string]string, def.Match.Variables.Len())
		for _, k := range def.Match.Variables.Keys() {
			v, _ := def.Match.Variables.Get(k)
			d.Variables[k] = v.Text()
		}
	}
	return d
}

func formatVariables(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	parts := make([]string, 0, len(vars))
	for k, v := range vars {
		parts = append(parts, k+"="+v)
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func formatStatus(code int) string {
	if code == 0 {
		return "auto"
	}
	return strconv.Itoa(code)
}

func orDash(s, dash string) string {
	if s == "" {
		return dash
	}
	return s
}
