// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	adx "github.com/takito1812/adx-query"
)

var (
	queryAttrs  []string
	queryLimit  int
	queryCI     bool
	queryStats  bool
	queryAsJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query <snapshot> <filter>",
	Short: "Evaluate an LDAP filter against a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVar(&queryAttrs, "attr", nil, "attribute to project (repeatable); all attributes if omitted")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum matched objects to return (0 = unlimited)")
	queryCmd.Flags().BoolVar(&queryCI, "ci", false, "case-insensitive string comparisons")
	queryCmd.Flags().BoolVar(&queryStats, "stats", false, "print scan/match counters to stderr")
	queryCmd.Flags().BoolVar(&queryAsJSON, "json", false, "emit results as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, filter := args[0], args[1]

	snap, err := adx.Open(path, nil)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer snap.Close()

	result := snap.Query(filter, adx.QueryOptions{
		Projection: queryAttrs,
		Limit:      queryLimit,
		CaseFold:   queryCI,
		Stats:      queryStats,
	})

	if queryAsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Objects); err != nil {
			return err
		}
	} else {
		for _, obj := range result.Objects {
			fmt.Println("dn:", obj.DN)
			for _, attr := range obj.Attributes {
				for _, v := range attr.Values {
					fmt.Printf("  %s: %s\n", attr.Name, v)
				}
			}
		}
	}

	if queryStats {
		fmt.Fprintf(cmd.ErrOrStderr(), "scanned=%d matched=%d decode_errors=%d elapsed=%s\n",
			result.Stats.ObjectsScanned, result.Stats.ObjectsMatched,
			result.Stats.DecodeErrors, result.Stats.Elapsed)
	}

	if result.Err != nil {
		var parseErr *adx.ParseError
		if errors.As(result.Err, &parseErr) {
			return parseErr
		}
		return fmt.Errorf("iteration stopped early: %w", result.Err)
	}

	if len(result.Objects) == 0 {
		return errNoMatch
	}
	return nil
}
