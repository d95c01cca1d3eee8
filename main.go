package main

import "baggage-manager/cmd"

func main() {
	cmd.Execute()
}
