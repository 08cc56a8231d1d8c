// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogama/asynchttp/config"
	"github.com/spf13/cobra"
)

func newBaseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base",
		Short: "Show or change the base address",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the base address",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b, err := a.resolver.Base()
				if errors.Is(err, config.ErrNoBase) {
					fmt.Fprintln(cmd.OutOrStdout(), "(none)")
					return nil
				} else if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), b)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set URL",
			Short: "Store a base address such as https://api.example.com:8443",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				b, err := config.ParseBase(args[0])
				if err != nil {
					return err
				}
				return a.resolver.SetBase(b)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the base address",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.resolver.ClearBase()
			},
		},
	)
	return cmd
}

func newTimeoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeouts",
		Short: "Show or change the default timeouts",
	}

	var connect, read time.Duration
	set := &cobra.Command{
		Use:   "set",
		Short: "Store default connect and read timeouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("connect") && !flags.Changed("read") {
				return errors.New("at least one of --connect and --read is required")
			}
			if connect < 0 || read < 0 {
				return errors.New("timeouts must not be negative")
			}
			if flags.Changed("connect") {
				if err := a.resolver.SetConnectTimeout(connect); err != nil {
					return err
				}
			}
			if flags.Changed("read") {
				if err := a.resolver.SetReadTimeout(read); err != nil {
					return err
				}
			}
			return nil
		},
	}
	set.Flags().DurationVar(&connect, "connect", 0, "Default connect timeout")
	set.Flags().DurationVar(&read, "read", 0, "Default read timeout")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the default timeouts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				t := a.resolver.Defaults()
				fmt.Fprintf(cmd.OutOrStdout(), "connect\t%s\nread\t%s\n", t.Connect, t.Read)
				return nil
			},
		},
		set,
	)
	return cmd
}
