package main

import "tactics-sim/cmd/battlesim/cmd"

func main() {
	cmd.Execute()
}
