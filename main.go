package main

import "github.com/theirongolddev/budgetsplit/cmd"

func main() {
	cmd.Execute()
}
