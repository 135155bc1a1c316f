package main

import "github.com/mouse-blink/halint/cmd"

func main() {
	cmd.Execute()
}
