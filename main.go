package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"vilolog/admin"
	"vilolog/auth"
	"vilolog/blog"
	"vilolog/cache"
	"vilolog/common"
	"vilolog/docstore"
	"vilolog/theme"
)

func main() {
	cfg := common.LoadConfig()

	store, err := docstore.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database %q: %v", cfg.DBPath, err)
	}

	publicTheme, err := theme.NewPublic(cfg.PublicThemeDir)
	if err != nil {
		log.Fatalf("load public theme: %v", err)
	}
	adminTheme, err := theme.NewAdmin(cfg.AdminThemeDir)
	if err != nil {
		log.Fatalf("load admin theme: %v", err)
	}

	sessions := auth.NewSessions(
		[]byte(cfg.CookieSecret), []byte(cfg.CSRFSecret), store, cfg.BlogID)

	router := gin.Default()
	router.Use(common.SecurityMiddleware(cfg))
	router.Use(cache.Middleware(cache.New()))

	adminModule := admin.NewAdminModule(store, sessions, adminTheme, publicTheme, cfg)
	adminModule.RegisterRoutes(router)

	blogModule := blog.NewBlogModule(store, publicTheme, cfg)
	blogModule.RegisterRoutes(router)

	log.Printf("vilolog listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
