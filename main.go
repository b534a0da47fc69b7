package main

import (
	"os"
	_ "time/tzdata"

	"campus-route-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
