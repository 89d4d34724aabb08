package main

import "leader-dojo/cmd"

func main() {
	cmd.Execute()
}
