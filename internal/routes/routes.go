package routes

import (
	"os"

	"solarkits_back_end/internal/handlers"
	"solarkits_back_end/internal/handlers/blog"
	"solarkits_back_end/internal/handlers/product"
	"solarkits_back_end/internal/middleware"
	"solarkits_back_end/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	// Sans MinIO, les URLs relatives renvoyées par l'upload doivent résoudre ici
	if services.MinioClient == nil {
		r.Static("/images/products", services.LocalUploadDir())
	}

	api := r.Group("/api", middleware.APIRateLimit())

	// Authentification
	api.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	api.POST("/logout", handlers.Logout)
	api.GET("/check-auth", handlers.CheckAuth)

	// Lectures publiques du storefront
	public := api.Group("/public")
	{
		public.GET("/products", handlers.PublicProducts)
		public.GET("/blog", handlers.PublicBlogPosts)
		public.GET("/blog/:id", handlers.PublicBlogPost)
	}

	// Panel admin : tout passe par la session
	admin := api.Group("", middleware.AuthRequired())
	{
		admin.GET("/products", product.ListProducts)
		admin.GET("/products/:id", product.GetProduct)
		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.DELETE("/products/:id", product.DeleteProduct)

		admin.GET("/blog", blog.ListPosts)
		admin.GET("/blog/:id", blog.GetPost)
		admin.POST("/blog", blog.CreatePost)
		admin.PUT("/blog/:id", blog.UpdatePost)
		admin.DELETE("/blog/:id", blog.DeletePost)

		admin.POST("/upload", handlers.UploadImages)
		admin.DELETE("/images/:filename", handlers.DeleteImage)
	}
}
