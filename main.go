package main

import "github.com/bmatsuo/lispy/cmd"

func main() {
	cmd.Execute()
}
