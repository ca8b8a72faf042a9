package main

import "github.com/ByLCY/pcbflex/cmd"

func main() {
	cmd.Execute()
}
