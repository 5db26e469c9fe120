package main

import "github.com/adrianhartanto/timebill/cmd"

func main() {
	cmd.Execute()
}
