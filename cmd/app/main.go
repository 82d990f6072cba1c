package main

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/logger"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/proto"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/service"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/transport"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		db.Module,
		auth.Module,
		service.Module,
		transport.Module,
		proto.Module,
		fx.Invoke(
			func(*transport.HTTPServer) {},
			func(*proto.BrainServerImpl) {},
		),
	).Run()
}
