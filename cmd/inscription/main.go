package main

import "github.com/meme-bots/go-inscription/cmd/inscription/cmd"

func main() {
	cmd.Execute()
}
