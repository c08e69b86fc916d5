package main

import "phishguard/pkg/cmd"

func main() {
	cmd.Execute()
}
