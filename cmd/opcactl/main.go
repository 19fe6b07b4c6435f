package main

import (
	"os"

	"github.com/ihoflaz/opca-admin-dashboard/cmd/opcactl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
