// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the adxquery version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("adxquery version", version)
		return nil
	},
}
