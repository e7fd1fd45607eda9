package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/PartnerPortal/PartnerPortal-Backend/api"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := api.NewServerFromEnv(utils.EnvPath)
	if err != nil {
		panic(fmt.Sprintf("Could not start server: %v", err))
	}

	if err := server.Start(ctx); err != nil {
		panic(fmt.Sprintf("Server stopped: %v", err))
	}
}
