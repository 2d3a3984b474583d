// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile subcommand tree.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the account profile",
	}
	cmd.AddCommand(newProfileUpdateCmd())
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the display name and avatar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireLogin(a.store); err != nil {
				return err
			}

			displayName, err := cmd.Flags().GetString("display-name")
			if err != nil {
				return err
			}
			avatarURL, err := cmd.Flags().GetString("avatar-url")
			if err != nil {
				return err
			}

			return a.store.UpdateProfile(cmd.Context(), displayName, avatarURL)
		},
	}

	cmd.Flags().String("display-name", "", "new display name")
	cmd.Flags().String("avatar-url", "", "new avatar URL")
	return cmd
}

// NewPasswordCmd creates the password subcommand tree.
func NewPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change, recover, or reset the account password",
	}
	cmd.AddCommand(newPasswordChangeCmd())
	cmd.AddCommand(newPasswordForgotCmd())
	cmd.AddCommand(newPasswordResetCmd())
	return cmd
}

func newPasswordChangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireLogin(a.store); err != nil {
				return err
			}

			oldPassword, err := readSecret(cmd, "old-password", "Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := readSecret(cmd, "new-password", "New password: ")
			if err != nil {
				return err
			}

			return a.store.ChangePassword(cmd.Context(), oldPassword, newPassword)
		},
	}

	cmd.Flags().String("old-password", "", "current password (prompted when omitted)")
	cmd.Flags().String("new-password", "", "new password (prompted when omitted)")
	return cmd
}

func newPasswordForgotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot EMAIL",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return a.store.ForgotPassword(cmd.Context(), args[0])
		},
	}
}

func newPasswordResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset RESET_TOKEN",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			newPassword, err := readSecret(cmd, "new-password", "New password: ")
			if err != nil {
				return err
			}

			return a.store.ResetPassword(cmd.Context(), args[0], newPassword)
		},
	}

	cmd.Flags().String("new-password", "", "new password (prompted when omitted)")
	return cmd
}
