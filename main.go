package main

import "github.com/Tiliavir/time-master/cmd"

func main() {
	cmd.Execute()
}
