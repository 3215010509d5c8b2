package main

import (
	"voxi/cmd/voxi/cmd"
)

func main() {
	cmd.Execute()
}
