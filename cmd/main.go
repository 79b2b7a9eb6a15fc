// Copyright 2026 The ADX Query Authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errNoMatch) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCodeForError(err))
}
