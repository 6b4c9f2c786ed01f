package main

import (
	"log"

	"github.com/paulaveiga/doceria-api/app"
)

func main() {
	if err := app.SetupAndRunAPIServer(); err != nil {
		log.Fatal(err)
	}
}
