package http

import (
	"github.com/DylanL0ng/student-housing-sub001/internal/delivery/http/handler"
	"github.com/DylanL0ng/student-housing-sub001/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	discoveryHandler   *handler.DiscoveryHandler
	interactionHandler *handler.InteractionHandler
	connectionHandler  *handler.ConnectionHandler
	profileHandler     *handler.ProfileHandler
	authMiddleware     *middleware.AuthMiddleware
}

func NewRouter(
	discoveryHandler *handler.DiscoveryHandler,
	interactionHandler *handler.InteractionHandler,
	connectionHandler *handler.ConnectionHandler,
	profileHandler *handler.ProfileHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		discoveryHandler:   discoveryHandler,
		interactionHandler: interactionHandler,
		connectionHandler:  connectionHandler,
		profileHandler:     profileHandler,
		authMiddleware:     authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Function-style endpoints: POST bodies in, {status, response} out.
	functions := router.Group("/functions/v1")
	functions.Use(r.authMiddleware.RequireSession())
	{
		functions.POST("/getDiscoveryProfiles", r.discoveryHandler.GetDiscoveryProfiles)
		functions.POST("/getConnections", r.connectionHandler.GetConnections)
		functions.POST("/getHousingRequests", r.profileHandler.GetHousingRequests)
		functions.POST("/getProfile", r.profileHandler.GetProfile)
		functions.POST("/sendProfileInteraction", r.interactionHandler.SendProfileInteraction)
	}

	return router
}
