package main

import "github.com/tarwn/consuming-logs/internal/adapters/cli"

func main() {
	cli.Execute()
}
