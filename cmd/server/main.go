package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "invoice-generator/internal/adapters/web"
	"invoice-generator/internal/app"
	"invoice-generator/internal/config"
	"invoice-generator/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	resolver := render.DirResolver(cfg.AssetsDir)
	if err := render.CheckResource(resolver, cfg.Business.LogoRef); err != nil {
		log.Printf("warning: logo %q unavailable (%v); invoices will fail to render until it exists or LOGO_PATH= is set", cfg.Business.LogoRef, err)
	}
	pdf := render.NewPDFRenderer(resolver, render.PDFOptions{Compress: cfg.CompressPDF})
	// The browser reaches the logo through the /assets/ route.
	preview := render.NewHTMLRenderer(render.AssetURLResolver("/assets/"))
	svc := app.NewAppService(cfg.Business, pdf, preview, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := webAdapter.NewHandler(ctx, svc, webAdapter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AssetsDir:      cfg.AssetsDir,
		DraftTTL:       cfg.DraftTTL,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("server starting on :%s (business %q, assets %s)", cfg.Port, cfg.Business.Name, cfg.AssetsDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
	log.Println("server stopped")
}
