package main

import "github.com/Jonathan-Adapt/pcbridge/cmd"

func main() {
	cmd.Execute()
}
