package main

import "htassist/cmd/htassist/cmd"

func main() {
	cmd.Execute()
}
