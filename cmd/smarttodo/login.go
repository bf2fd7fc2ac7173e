package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		email := ""
		if len(args) == 1 {
			email = args[0]
		}
		if email == "" {
			email, err = prompt("email: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("password: ")
		if err != nil {
			return err
		}

		cred, err := rt.services.Users.Login(context.Background(), email, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("signed in as %s\n", cred.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		name, err := prompt("name: ")
		if err != nil {
			return err
		}
		email, err := prompt("email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("password: ")
		if err != nil {
			return err
		}

		cred, err := rt.services.Users.Register(context.Background(), name, email, password)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		fmt.Printf("registered as %s\n", cred.Email)
		return nil
	},
}

var guestCmd = &cobra.Command{
	Use:   "guest",
	Short: "Continue with a guest account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cred, err := rt.services.Users.Guest(context.Background())
		if err != nil {
			return fmt.Errorf("guest: %w", err)
		}
		fmt.Printf("continuing as %s\n", cred.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.creds.Clear(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("signed out")
		return nil
	},
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, guestCmd, logoutCmd)
}
