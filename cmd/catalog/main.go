package main

import (
	"os"

	"lingye.co/catalog/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
