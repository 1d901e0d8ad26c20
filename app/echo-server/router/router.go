package router

import (
	"net/http"

	"myStorefront/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupOpsRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories, authRequired)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.POST("/score", handler.Score)
	reco.POST("/rank", handler.Rank)
}

func SetPersonalizationRoutes(api *echo.Group, handler *rest.PersonalizationHandler, authRequired echo.MiddlewareFunc) {
	actions := api.Group("/actions", authRequired)
	actions.POST("", handler.RecordAction)
	actions.GET("", handler.ListActions)

	prefs := api.Group("/preferences", authRequired)
	prefs.GET("", handler.GetPreferences)
	prefs.PUT("/price-range", handler.SetPriceRange)

	api.POST("/search/reorder", handler.Reorder, authRequired)
	api.GET("/insights/churn", handler.Churn, authRequired)

	session := api.Group("/session", authRequired)
	session.GET("/export", handler.ExportSession)
	session.POST("/import", handler.ImportSession)
	session.DELETE("", handler.EndSession)
}

func SetCompareRoutes(api *echo.Group, handler *rest.CompareHandler, authRequired echo.MiddlewareFunc) {
	compare := api.Group("/compare", authRequired)
	compare.GET("", handler.List)
	compare.POST("", handler.Add)
	compare.DELETE("", handler.Clear)
	compare.DELETE("/:id", handler.Remove)
}
