package main

import "nathanbeddoewebdev/vitals/cmd"

func main() {
	cmd.Execute()
}
