package main

import (
	"os"

	"github.com/Dagefoerde/collaborativefolders/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
