package main

import "github.com/Sallvainian/fermi-tools/cmd"

func main() {
	cmd.Execute()
}
