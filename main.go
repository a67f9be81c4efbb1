package main

import "github.com/jfmyers9/soundstats/cmd"

func main() {
	cmd.Execute()
}
