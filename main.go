package main

import (
	"os"

	"github.com/kytos-ng/lintgate/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
