package main

import "github.com/byterings/gitid/cmd"

func main() {
	cmd.Execute()
}
