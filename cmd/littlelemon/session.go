package cmd

import (
	"errors"
	"fmt"

	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Store your name and email",
	Long:  "Complete onboarding from the command line by storing a name and an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		user, err := controller.Sessions().Register(name, email)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🍋 Welcome to Little Lemon, %s!\n", user.Name)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		user, err := controller.Sessions().Current()
		if errors.Is(err, services.ErrNoSession) {
			return fmt.Errorf("nobody is signed in, run 'littlelemon register' first")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hello, %s!\n", user.Name)
		fmt.Fprintf(out, "Your email is: %s\n", user.Email)
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the signed-in user",
	Long:  "Remove the stored name and email. The cached menu is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		if err := controller.Sessions().SignOut(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "👋 Signed out")
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "your name")
	registerCmd.Flags().String("email", "", "your email address")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
}
