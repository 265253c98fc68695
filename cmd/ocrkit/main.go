package main

import "github.com/ocrkit-go/ocrkit/cmd/ocrkit/cmd"

func main() {
	cmd.Execute()
}
