package main

import "github.com/quaketrack/rbfetch/cmd"

func main() {
	cmd.Execute()
}
