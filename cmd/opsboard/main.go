package main

import "github.com/bigfun-dj/opsboard/cmd/opsboard/cmd"

func main() {
	cmd.Execute()
}
