package main

import "vibechart/cmd/vibectl/commands"

func main() {
	commands.Execute()
}
