// Package main is the entry point for the pyscaff CLI.
package main

import "github.com/pyscaff/pyscaff/cmd"

func main() {
	cmd.Execute()
}
