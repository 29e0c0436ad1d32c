package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/showoff/config"
	"github.com/sagarc03/showoff/credentials"
)

var hashCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an album password for the password setting",
	Long: `Prompt for a password and print the value to store in an album's
password setting.

By default the password is signed with the server secret (HMAC-SHA256),
so the stored value only verifies against this server's secret. Use
--bcrypt for a secret-independent bcrypt hash.`,
	Args: cobra.NoArgs,
	RunE: runHash,
}

var hashBcrypt bool

func init() {
	hashCmd.Flags().BoolVar(&hashBcrypt, "bcrypt", false, "use bcrypt instead of the server secret")
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return handlePromptError(err)
	}

	var stored string
	if hashBcrypt {
		stored, err = credentials.HashBcrypt(password)
		if err != nil {
			return err
		}
	} else {
		cfg, cerr := config.FromContext(cmd.Context())
		if cerr != nil {
			return cerr
		}
		secret, serr := credentials.LoadSecret(cfg.Auth.SecretConfig)
		if serr != nil {
			return fmt.Errorf("load secret: %w", serr)
		}
		stored = credentials.HashHMAC(secret, password)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), stored)
	return nil
}

func promptPassword() (string, error) {
	notEmpty := func(input string) error {
		if input == "" {
			return errors.New("password is required")
		}
		return nil
	}

	password, err := (&promptui.Prompt{Label: "Password", Mask: '*', Validate: notEmpty}).Run()
	if err != nil {
		return "", err
	}

	confirm, err := (&promptui.Prompt{
		Label: "Confirm password",
		Mask:  '*',
		Validate: func(input string) error {
			if input != password {
				return errors.New("passwords do not match")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return "", err
	}
	return confirm, nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
