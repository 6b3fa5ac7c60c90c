package main

import "github.com/fekuna/boutique-catalog-service/cmd/boutiquectl/commands"

func main() {
	commands.Execute()
}
