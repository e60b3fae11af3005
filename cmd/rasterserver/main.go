// Command rasterserver runs the HTTP render API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printraster/rasterpress/internal/config"
	"github.com/printraster/rasterpress/internal/httpapi"
	"github.com/printraster/rasterpress/internal/rasterize"
)

func main() {
	cfgPath := os.Getenv("RASTERPRESS_CONFIG")
	if cfgPath == "" {
		cfgPath = "rasterpress.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Use release mode to disable debug overhead.
	gin.SetMode(gin.ReleaseMode)

	// gin.New() instead of gin.Default() — avoids the Logger middleware
	// serializing stdout writes under a mutex on every request.
	router := gin.New()

	// Lightweight custom recovery: only captures on an actual panic.
	router.Use(func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Recovery] panic recovered: %v", r)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	})

	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}
	registerPprof(router)

	// Concurrency control: rasterization is CPU-bound per page and every
	// admitted request opens its own tabs on the one shared browser, so
	// bound the number of requests admitted past this point rather than let
	// them pile up inside the browser.
	semaphore := make(chan struct{}, cfg.Server.MaxConcurrent)
	router.Use(func(c *gin.Context) {
		semaphore <- struct{}{}
		defer func() { <-semaphore }()
		c.Next()
	})

	server := &httpapi.Server{
		Rasterizer: rasterize.ChromeRasterizer{ChromeBin: cfg.Rasterizer.ChromeBin},
		Config:     cfg,
	}
	server.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.Watch(ctx, cfgPath, func(fresh *config.Config) {
		fresh.Server.Addr = cfg.Server.Addr // listener address is fixed at startup
		*cfg = *fresh
		log.Println("config reloaded")
	}); err != nil {
		log.Printf("config hot-reload disabled: %v", err)
	}

	go func() {
		fmt.Printf("Server starting on %s (max concurrent renders: %d)\n", cfg.Server.Addr, cfg.Server.MaxConcurrent)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	rasterize.Shutdown()
}

// registerPprof exposes net/http/pprof through gin, restricted to localhost
// since it leaks memory/stack contents.
func registerPprof(router *gin.Engine) {
	debug := router.Group("/debug/pprof")
	debug.Use(func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP != "127.0.0.1" && clientIP != "::1" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: pprof is only accessible from localhost"})
			return
		}
		c.Next()
	})
	debug.GET("/", gin.WrapF(pprof.Index))
	debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	debug.GET("/profile", gin.WrapF(pprof.Profile))
	debug.GET("/symbol", gin.WrapF(pprof.Symbol))
	debug.POST("/symbol", gin.WrapF(pprof.Symbol))
	debug.GET("/trace", gin.WrapF(pprof.Trace))
	debug.GET("/heap", gin.WrapF(pprof.Index))
	debug.GET("/goroutine", gin.WrapF(pprof.Index))
	debug.GET("/allocs", gin.WrapF(pprof.Index))
	debug.GET("/block", gin.WrapF(pprof.Index))
	debug.GET("/mutex", gin.WrapF(pprof.Index))
	debug.GET("/threadcreate", gin.WrapF(pprof.Index))
}
