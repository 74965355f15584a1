package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"shareit/src/config"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

var validate = validator.New()

func newProxy(target *url.URL) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	return proxy
}

// requireUser rejects calls without a usable identity header before they
// are forwarded.
func requireUser(ctx *gin.Context) {
	header := ctx.GetHeader(config.UserIDHeader)
	if header == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Sharer-User-Id header"})
		return
	}
	id, err := strconv.ParseUint(header, 10, 64)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-Sharer-User-Id header"})
		return
	}
}

// bindBody unmarshals and validates the request body, then restores it so
// the proxy forwards the original bytes.
func bindBody(ctx *gin.Context, out any) error {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return err
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err := json.Unmarshal(body, out); err != nil {
		return err
	}
	return validate.Struct(out)
}

func setupGateway(target *url.URL) *gin.Engine {
	proxy := newProxy(target)

	if err := validate.RegisterValidation("presentorfuture", presentOrFuture); err != nil {
		log.Fatalf("Failed to register validator: %s", err)
	}

	forward := func(ctx *gin.Context) {
		proxy.ServeHTTP(ctx.Writer, ctx.Request)
	}
	validated := func(factory func() any) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			if err := bindBody(ctx, factory()); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			forward(ctx)
		}
	}

	router := gin.Default()
	if os.Getenv("API_ENV") == "local" {
		router.Use(cors.Default())
	}
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	router.GET("/users", forward)
	router.GET("/users/:id", forward)
	router.POST("/users", validated(func() any { return &CreateUserBody{} }))
	router.PATCH("/users/:id", validated(func() any { return &UpdateUserBody{} }))
	router.DELETE("/users/:id", forward)

	identified := router.Group("")
	identified.Use(requireUser)
	{
		identified.GET("/items", forward)
		identified.GET("/items/search", forward)
		identified.GET("/items/:id", forward)
		identified.POST("/items", validated(func() any { return &CreateItemBody{} }))
		identified.PATCH("/items/:id", validated(func() any { return &UpdateItemBody{} }))
		identified.DELETE("/items/:id", forward)
		identified.POST("/items/:id/comment", validated(func() any { return &CreateCommentBody{} }))

		identified.POST("/bookings", validated(func() any { return &CreateBookingBody{} }))
		identified.PATCH("/bookings/:id", forward)
		identified.GET("/bookings/:id", forward)
		identified.GET("/bookings", forward)
		identified.GET("/bookings/owner", forward)

		identified.POST("/requests", validated(func() any { return &CreateRequestBody{} }))
		identified.GET("/requests", forward)
		identified.GET("/requests/all", forward)
		identified.GET("/requests/:id", forward)
	}

	return router
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}

	serverURL := os.Getenv("SHAREIT_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:9090"
	}
	target, err := url.Parse(serverURL)
	if err != nil {
		log.Fatalf("Invalid server URL %s: %s", serverURL, err)
	}

	router := setupGateway(target)

	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start gateway: %s", err)
	}
}
