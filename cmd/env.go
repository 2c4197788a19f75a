package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vonZeppelin/tvshowl/config"
	"github.com/vonZeppelin/tvshowl/style"
	"github.com/vonZeppelin/tvshowl/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// supportedEnvs lists every environment variable read by the application, legacy names included.
func supportedEnvs() []string {
	envs := []string{where.EnvConfigPath}
	for _, name := range config.EnvExposed {
		field := config.Default[name]
		envs = append(envs, field.Env())
		if field.LegacyEnv != "" {
			envs = append(envs, field.LegacyEnv)
		}
	}

	slices.Sort(envs)
	return slices.Compact(envs)
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range supportedEnvs() {
			value := os.Getenv(env)
			present := value != ""

			if !present && setOnly {
				continue
			}
			if present && unsetOnly {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(style.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(style.Green)(value))
			} else {
				cmd.Println(style.Fg(style.Red)("unset"))
			}
		}
	},
}
