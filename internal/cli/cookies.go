// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"net/url"

	"github.com/gogama/asynchttp/jar"
	"github.com/spf13/cobra"
)

func newCookiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookies",
		Short: "Inspect and edit the cookie jar",
	}
	cmd.AddCommand(newCookiesListCmd(a), newCookiesRemoveCmd(a), newCookiesClearCmd(a))
	return cmd
}

func newCookiesListCmd(a *app) *cobra.Command {
	var origin string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cookies by origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			origins := a.jar.Origins()
			if origin != "" {
				u, err := parseOrigin(origin)
				if err != nil {
					return err
				}
				origins = []*url.URL{u}
			}
			w := cmd.OutOrStdout()
			for _, u := range origins {
				cookies, _ := a.jar.Peek(u)
				for _, c := range cookies {
					fmt.Fprintf(w, "%s\t%s\n", jar.Key(u), jar.Format(c))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "Only list cookies filed under this origin")
	return cmd
}

func newCookiesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ORIGIN NAME",
		Short: "Remove every cookie with the given name from an origin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseOrigin(args[0])
			if err != nil {
				return err
			}
			cookies, _ := a.jar.Peek(u)
			var n int
			for _, c := range cookies {
				if c.Name != args[1] {
					continue
				}
				removed, err := a.jar.Remove(u, c)
				if err != nil {
					return err
				}
				if removed {
					n++
				}
			}
			if n == 0 {
				return fmt.Errorf("no cookie named %q for %s", args[1], jar.Key(u))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cookie(s)\n", n)
			return nil
		},
	}
}

func newCookiesClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cookie from the jar",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.jar.RemoveAll()
		},
	}
}

func parseOrigin(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", s)
	}
	return u, nil
}
