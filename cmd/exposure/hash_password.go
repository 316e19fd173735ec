package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"exposure/config"
	"exposure/internal/errors"
	"exposure/internal/infra/auth"

	"github.com/spf13/cobra"
)

func newHashPasswordCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a client password for auth.clients",
		Long: `Reads one password line from stdin and prints its bcrypt hash, ready to
paste into auth.clients[].passwordHash. The cost defaults to auth.bcryptCost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("cost") {
				// without a config file the hasher default applies
				if cfg, err := config.New(); err == nil && cfg.Auth != nil {
					cost = cfg.Auth.BcryptCost
				}
			}

			return hashPassword(cost, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (4-31)")

	return cmd
}

func hashPassword(cost int, in io.Reader, out io.Writer) error {
	// only the cost is taken from config so a broken client entry can still be replaced
	hasher, err := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: cost}})
	if err != nil {
		return err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "read password")
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, hash)

	return errors.WithStack(err)
}
