package main

import "corkcount/cmd"

func main() {
	cmd.Execute()
}
