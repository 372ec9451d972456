package main

import "github.com/giygas/interactions-api/cmd"

func main() {
	cmd.Execute()
}
