package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/plant-watering/internal/api/handlers/plant"
	"github.com/aliskhannn/plant-watering/internal/api/handlers/reminder"
	"github.com/aliskhannn/plant-watering/internal/api/middlewares"
)

func New(plants *plant.Handler, reminders *reminder.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")

	p := api.Group("/plants")
	{
		p.POST("", plants.Create)
		p.GET("", plants.List)
		p.GET("/:id", plants.Get)
		p.PUT("/:id", plants.Update)
		p.DELETE("/:id", plants.Delete)
		p.POST("/:id/water", plants.Water)
	}

	r := api.Group("/reminders")
	{
		r.GET("", reminders.GetAll)
		r.GET("/:id", reminders.GetStatus)
	}

	return e
}
