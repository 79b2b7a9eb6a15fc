// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

// version is stamped at release time; kept as a plain literal since this
// module has no build-time injection step.
const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "adxquery",
	Short: "Query Active Directory Explorer snapshots with LDAP filter syntax",
	Long: `adxquery runs RFC 4515 LDAP filter expressions against an offline
Active Directory Explorer (.dat) snapshot, entirely without a directory
connection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(dumpHeaderCmd)
	rootCmd.AddCommand(versionCmd)
}
