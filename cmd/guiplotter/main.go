package main

import "github.com/iafilius/GUIPlotter/cmd/guiplotter/cmd"

func main() {
	cmd.Execute()
}
