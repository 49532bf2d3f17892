package main

import "github.com/portsh/portsh/cmd"

func main() {
	cmd.Execute()
}
