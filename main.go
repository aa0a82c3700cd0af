package main

import (
	"log"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/config"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/db"
	"github.com/stiapanreha-dev/yaminecraft-students-sub001/route"
)

func main() {
	config.Logger()
	config.LoadEnv()

	db.ConnectDB()

	app := config.NewApp()

	route.SetupRoutes(app, db.GetDB(), db.GetMongo())

	log.Fatal(app.Listen(":" + config.Env.AppPort))
}
