package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/pkg"
)

// hashPasswordCmd prints a bcrypt hash usable as FITTRACK_ADMIN_PASSWORD_HASH.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash of a password (read from stdin when not given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return errors.New("empty password")
		}

		hash, err := pkg.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
