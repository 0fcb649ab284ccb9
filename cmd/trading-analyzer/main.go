package main

import (
	"context"
	"fmt"
	"os"

	"trading-analyzer-go/internal/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "trading-analyzer failed: %v\n", err)
		os.Exit(1)
	}
}
