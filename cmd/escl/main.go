package main

import "github.com/MeKo-Tech/escl/cmd/escl/cmd"

func main() {
	cmd.Execute()
}
