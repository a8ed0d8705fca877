package main

import "github.com/rsummers618/hearthbreaker/cmd"

func main() {
	cmd.Execute()
}
