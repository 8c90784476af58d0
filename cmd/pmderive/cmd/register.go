package cmd

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/host/demo"
	"github.com/pcpkit/pmderive/pkg/pmderive"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <name> <expression>",
	Short: "Register a derived metric and print its bound descriptor",
	Long: `Register a derived metric against the built-in demo metric namespace
(kernel.all.*, disk.dev.*, mem.*, network.interface.*) and print its
resolved descriptor, or the diagnostic if registration or binding fails.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, expr := args[0], args[1]

	engine := pmderive.New()
	if _, err := engine.Register(name, expr); err != nil {
		return fmt.Errorf("%s", engine.LastError().Format(false))
	}

	ns := demo.New()
	ctx := engine.OpenContext(host.Context{Resolver: ns, Descs: ns, Prober: ns})
	defer ctx.Close()

	id, _ := engine.LookupID(name)
	desc, err := engine.Descriptor(ctx, id)
	if err != nil {
		if err == pmderive.ErrDisabled {
			return fmt.Errorf("%s is disabled in this context: %s", name, engine.LastError().Format(false))
		}
		return err
	}

	fmt.Printf("%s: value_type=%s semantics=%s units=%+v instance_domain=%q id=%s\n",
		name, desc.ValueType, desc.Semantics, desc.Units, desc.InstanceDomain, desc.ID)
	return nil
}
