package main

import "github.com/quantpanel/panel/cmd"

func main() {
	cmd.Execute()
}
