package main

import "github.com/bz888/policyask/cmd"

func main() {
	cmd.Execute()
}
