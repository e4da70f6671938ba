package main

import "github.com/masmgr/commitline/cmd"

func main() {
	cmd.Run()
}
