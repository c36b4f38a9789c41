package main

import "github.com/zfogg/creatorhub/cli/internal/cmd"

func main() {
	cmd.Execute()
}
