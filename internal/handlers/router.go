package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins []string
}

func NewRouter(h *Handler, tokens TokenValidator, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(h.Log), Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/api/signup", h.Signup)
	r.POST("/api/signin", h.Signin)
	r.POST("/api/forgot-password", h.ForgotPassword)
	r.POST("/api/verify-otp", h.VerifyOTP)
	r.POST("/api/reset-password", h.ResetPassword)
	r.GET("/api/allproducts", h.AllProducts)
	r.POST("/api/category", h.AddCategoryItem)
	r.GET("/items/:item", h.ItemsByCategory)
	r.POST("/create-order", h.CreatePaymentOrder)
	r.POST("/verify-payment", h.VerifyPayment)

	authed := Authenticate(tokens)
	r.GET("/user/details", authed, h.UserDetails)

	api := r.Group("/api", authed)
	{
		// Cart
		api.POST("/addtocart", h.AddToCart)
		api.GET("/cartitems", h.CartItems)
		api.DELETE("/delete/:id", h.DeleteCartItem)
		api.DELETE("/clear-cart", h.ClearCart)

		// Orders
		api.POST("/orders", h.PlaceOrder)
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:orderId", h.GetOrder)
		api.POST("/checkout", h.Checkout)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
