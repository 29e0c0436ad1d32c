package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarc03/showoff"
	"github.com/sagarc03/showoff/config"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the resolved route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		routes, err := showoff.BuildRouteTable(cfg.Viewer.Prefix, cfg.Viewer.Routes)
		if err != nil {
			return fmt.Errorf("build routes: %w", err)
		}
		return printRoutes(cmd.OutOrStdout(), routes)
	},
}

func init() {
	routesCmd.Flags().String("prefix", "", "mount prefix, e.g. /photos")
	rootCmd.AddCommand(routesCmd)
}

func printRoutes(w io.Writer, routes *showoff.RouteTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tMETHODS\tPATTERN")
	for _, name := range routes.Names() {
		pattern, methods, err := routes.Resolve(name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(methods, ","), pattern)
	}
	return tw.Flush()
}
