package main

import "github.com/helviojunior/brparser/cmd"

func main() {
	cmd.Execute()
}
