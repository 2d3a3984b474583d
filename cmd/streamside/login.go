// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/identity"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login IDENTIFIER",
		Short: "Log in with an email address or username",
		Long: `Log in to the Streamside platform. The identifier may be an email
address or a username; the client tells them apart automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if err := a.store.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			printSessionSummary(cmd, a.store)
			return nil
		},
	}

	cmd.Flags().String("password", "", "password (prompted when omitted)")
	return cmd
}

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := registerInputFromFlags(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if err := a.store.Register(cmd.Context(), in); err != nil {
				return err
			}
			printSessionSummary(cmd, a.store)
			return nil
		},
	}

	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("username", "", "desired username")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	for _, name := range []string{"first-name", "last-name", "username", "email"} {
		//nolint:errcheck // flags are declared right above
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func registerInputFromFlags(cmd *cobra.Command) (identity.RegisterInput, error) {
	var in identity.RegisterInput
	flags := cmd.Flags()

	var err error
	if in.FirstName, err = flags.GetString("first-name"); err != nil {
		return in, err
	}
	if in.LastName, err = flags.GetString("last-name"); err != nil {
		return in, err
	}
	if in.Username, err = flags.GetString("username"); err != nil {
		return in, err
	}
	if in.Email, err = flags.GetString("email"); err != nil {
		return in, err
	}
	in.Password, err = readPassword(cmd)
	return in, err
}
