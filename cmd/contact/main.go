// Command contact is the operator CLI for the MBS NYC contact flow:
// it submits the contact form, lists stored submissions and mints admin tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
