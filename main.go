package main

import "github.com/frahmantamala/expense-tracking/cmd"

func main() {
	cmd.Execute()
}
