package main

import "jitcheck/cmd"

func main() {
	cmd.Execute()
}
