package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinebook-cli/config"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Long:  `Sign in with your CineBook account so bookings can be made from the seat picker`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := promptCredentials()
		if err != nil {
			return err
		}

		cfg := config.Load()
		client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIBaseURL)

		session, err := client.Login(context.Background(), username, password)
		if err != nil {
			if detail := service.ErrorDetail(err); detail != "" {
				return errors.New(detail)
			}
			return err
		}
		if err := store.SaveSession(session); err != nil {
			return fmt.Errorf("login succeeded but the session could not be saved: %w", err)
		}

		fmt.Printf("Signed in as %s\n", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

func promptCredentials() (username string, password string, err error) {
	userPrompt := promptui.Prompt{
		Label: "Username",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("username is required")
			}
			return nil
		},
	}
	username, err = userPrompt.Run()
	if err != nil {
		return "", "", err
	}

	passPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("password is required")
			}
			return nil
		},
	}
	password, err = passPrompt.Run()
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), password, nil
}
