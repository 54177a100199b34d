package main

import "github.com/oasislmf/release-notes/cmd"

func main() {
	cmd.Execute()
}
