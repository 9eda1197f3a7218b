package main

import (
	"os"

	"podbatch/cmd"
	"podbatch/pkg/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.PrintError(err, "podbatch")
		os.Exit(1)
	}
}
