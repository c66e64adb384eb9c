package main

import "github.com/toba/gosh/cmd"

func main() {
	cmd.Execute()
}
