package main

import "github.com/oshokin/paper-updater/cmd/paper-updater/cmd"

func main() {
	cmd.Execute()
}
