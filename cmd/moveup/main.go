package main

import "github.com/yourname/moveup/cmd/moveup/root"

func main() {
	root.Execute()
}
