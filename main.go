package main

import "github.com/vibast-solutions/ms-go-club/cmd"

func main() {
	cmd.Execute()
}
