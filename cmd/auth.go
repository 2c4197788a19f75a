package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vonZeppelin/tvshowl/auth"
	"github.com/vonZeppelin/tvshowl/icon"
	"github.com/vonZeppelin/tvshowl/log"
	"github.com/vonZeppelin/tvshowl/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().BoolP("delete", "d", false, "Remove the stored Trello credentials")
}

// authCmd stores the Trello credentials in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store the Trello API key and token in the system keyring",
	Long: `Store the Trello API key and token in the system keyring.
Stored credentials are used whenever trello.key or trello.token is not configured.
Generate both at https://trello.com/power-ups/admin`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("delete")) {
			handleErr(auth.Delete())
			log.Info("trello credentials removed from keyring")
			fmt.Printf("%s Trello credentials removed\n", style.Fg(style.Green)(icon.Get(icon.Success)))
			return
		}

		var answers struct {
			Key   string
			Token string
		}

		required := survey.WithValidator(survey.Required)
		handleErr(survey.AskOne(&survey.Input{
			Message: "Trello API key:",
		}, &answers.Key, required))
		handleErr(survey.AskOne(&survey.Password{
			Message: "Trello API token:",
		}, &answers.Token, required))

		creds := auth.Credentials{
			Key:   strings.TrimSpace(answers.Key),
			Token: strings.TrimSpace(answers.Token),
		}
		if creds.Key == "" || creds.Token == "" {
			handleErr(errors.New("both key and token are required"))
		}

		handleErr(auth.Save(creds))
		log.Info("trello credentials stored in keyring")
		fmt.Printf("%s Trello credentials stored\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}
