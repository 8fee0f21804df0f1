// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/marathegroup/portal/internal/config"
	"github.com/marathegroup/portal/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "portal",
		Usage:  "Marathe Group customer and admin portal API",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
