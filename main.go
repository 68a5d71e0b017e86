package main

import "github.com/sadopc/voltlog/cmd"

func main() {
	cmd.Execute()
}
