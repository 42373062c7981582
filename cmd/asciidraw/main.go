package main

import "github.com/idursun/asciidraw/cmd/asciidraw/commands"

func main() {
	commands.Execute()
}
