package main

import (
	"fmt"

	"github.com/applianceops/remoterun/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		return
	}
}
