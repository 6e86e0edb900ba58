package main

import "github.com/oncorag/gliorag/internal/commands"

func main() {
	commands.Execute()
}
