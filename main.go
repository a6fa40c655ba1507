package main

import (
	"github.com/rloerke/puffins/config"
	"github.com/rloerke/puffins/models"
	"github.com/rloerke/puffins/routes"
	"github.com/rloerke/puffins/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Reaction{},
		&models.Follow{},
		&models.Block{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
