package main

import "gastos/internal/cli"

func main() {
	cli.Execute()
}
