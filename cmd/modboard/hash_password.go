package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modboard/modboard/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var hashPasswordStdin bool

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print an argon2id hash for ADMIN_PASSWORD_HASH.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}

func init() {
	hashPasswordCmd.Flags().BoolVar(&hashPasswordStdin, "password-stdin", false, "read the password from the first line of stdin")
}

func readPassword(cmd *cobra.Command) (string, error) {
	if hashPasswordStdin {
		password, err := readFirstLine(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		if password == "" {
			return "", errors.New("password is empty")
		}
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	cmd.PrintErr("Password: ")
	pass1, err := term.ReadPassword(fd)
	cmd.PrintErrln()
	if err != nil {
		return "", err
	}
	if len(pass1) == 0 {
		return "", errors.New("password is empty")
	}

	cmd.PrintErr("Confirm password: ")
	pass2, err := term.ReadPassword(fd)
	cmd.PrintErrln()
	if err != nil {
		return "", err
	}
	if string(pass1) != string(pass2) {
		return "", errors.New("passwords do not match")
	}
	return string(pass1), nil
}

func readFirstLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r\n"), nil
}
