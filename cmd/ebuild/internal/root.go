package internal

import (
	"context"
	"os"
	"os/signal"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ebuild [flags] <module|all|compile_database>",
	Short: "ebuild builds multi-module C projects",
	Long: `ebuild reads the project's build configuration, resolves the dependency
closure of the requested module and runs the compiler, archiver and linker
commands it needs, stopping at the first failure.

  ebuild <module>          build one module and its dependencies
  ebuild all               build every executable
  ebuild compile_database  write compile_commands.json without building`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runBuild,
}

// Execute runs the root command and exits non-zero on failure. Interrupts
// cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
