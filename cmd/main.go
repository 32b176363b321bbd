package main

import (
	cmd "github.com/kerbaras/littlelemon/cmd/littlelemon"
)

func main() {
	cmd.Execute()
}
