package main

import "github.com/MBhoomika/serene-ai/internal/commands"

func main() {
	commands.Execute()
}
