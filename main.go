package main

import "github.com/webrun/webrun/cmd"

func main() {
	cmd.Execute()
}
