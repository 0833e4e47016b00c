package main

import "github.com/xrsl/atscv/cmd"

func main() {
	cmd.Execute()
}
