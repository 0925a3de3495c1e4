package main

import "voice-fraud-go/cmd/v2f/cmd"

func main() {
	cmd.Execute()
}
