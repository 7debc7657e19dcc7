package main

import (
	"fmt"
	"os"
)

func main() {
	c := &cli{}
	defer c.close()

	if err := c.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		c.close()
		os.Exit(1)
	}
}
