// SPDX-License-Identifier: MPL-2.0

// Command meadows shows which layered configuration files a program finds.
package main

import cmd "github.com/meadows/meadows/cmd/meadows"

func main() {
	cmd.Execute()
}
