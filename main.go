// Lynne - a daily birth-control adherence tracker for the command line.
package main

import (
	"github.com/lynneapp/lynne/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Die(err)
	}
}
