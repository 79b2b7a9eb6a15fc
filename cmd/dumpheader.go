// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	adx "github.com/takito1812/adx-query"
)

var dumpHeaderCmd = &cobra.Command{
	Use:   "dump-header <snapshot>",
	Short: "Print a snapshot's header metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := adx.Open(args[0], nil)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer snap.Close()

		rec := snap.HeaderMetadata()
		fmt.Printf("version:     %d\n", rec.Version)
		fmt.Printf("created:     %s\n", rec.Created)
		fmt.Printf("source dn:   %s\n", rec.SourceDN)
		fmt.Printf("attributes:  %d\n", rec.AttributeCount)
		fmt.Printf("classes:     %d\n", rec.ClassCount)
		fmt.Printf("dn prefixes: %d\n", rec.PrefixCount)
		fmt.Printf("objects:     %d\n", rec.ObjectCount)
		return nil
	},
}
