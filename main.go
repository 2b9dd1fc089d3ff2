package main

import "github.com/brogergvhs/mangatown/cmd"

func main() {
	cmd.Execute()
}
