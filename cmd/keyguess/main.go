package main

import "github.com/guileen/keyguess/cmd/keyguess/cmd"

func main() {
	cmd.Execute()
}
