package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lorenzwalthert/bonousus/src/style"
	_ "github.com/lorenzwalthert/bonousus/src/style/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available style rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(os.Stdout, "%-22s%-10s%s\n", "rule", "severity", "enabled")
		for _, name := range style.All() {
			r, err := style.Get(name)
			if err != nil {
				return err
			}
			enabled := "no"
			if r.DefaultEnabled() {
				enabled = "yes"
			}
			fmt.Fprintf(os.Stdout, "%-22s%-10s%s\n", r.Name(), r.DefaultSeverity(), enabled)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
