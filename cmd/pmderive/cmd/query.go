package cmd

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/host/demo"
	"github.com/pcpkit/pmderive/pkg/pmderive"
	"github.com/spf13/cobra"
)

var (
	queryConfig   string
	queryChildren bool
)

var queryCmd = &cobra.Command{
	Use:   "query [prefix]",
	Short: "Load a configuration file and traverse its namespace",
	Long: `Load a derived-metrics configuration file (the "name = expression"
format of a DERIVED_CONFIG entry) against the built-in demo namespace,
then list every enabled registration under prefix, or its immediate
children with --children.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryConfig, "config", "", "path or ':'-separated path spec to load")
	queryCmd.Flags().BoolVar(&queryChildren, "children", false, "list immediate children instead of full traversal")
}

func runQuery(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	engine := pmderive.New()
	if queryConfig != "" {
		if _, err := engine.LoadPathSpec(queryConfig, false); err != nil {
			return err
		}
	}

	ns := demo.New()
	ctx := engine.OpenContext(host.Context{Resolver: ns, Descs: ns, Prober: ns})
	defer ctx.Close()

	if queryChildren {
		for _, c := range engine.Children(ctx, prefix) {
			kind := "leaf"
			if !c.IsLeaf {
				kind = "node"
			}
			fmt.Printf("%s\t%s\n", c.Name, kind)
		}
		return nil
	}

	for _, name := range engine.Traverse(ctx, prefix) {
		fmt.Println(name)
	}
	return nil
}
