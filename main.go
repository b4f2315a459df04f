package main

import (
	"log"

	"github.com/vlgmic/warehouse-ingest/cmd"
)

func main() {
	if err := cmd.RunServer(); err != nil {
		log.Fatal(err)
	}
}
