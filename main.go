package main

import "obshook/internal/cmd"

func main() {
	cmd.Execute()
}
