package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Lakshay1509/carheroz-tracker/config"
	"github.com/Lakshay1509/carheroz-tracker/controllers"
	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/Lakshay1509/carheroz-tracker/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.ServiceRecord{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	controllers.StartSchedulers()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
