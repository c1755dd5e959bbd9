package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"invoice-generator/internal/adapters/cli"
	"invoice-generator/internal/adapters/repl"
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
	preview := render.NewHTMLRenderer(resolver)
	svc := app.NewAppService(cfg.Business, pdf, preview, nil)

	interactive := cli.Interactive(func(ctx context.Context, in io.Reader, out io.Writer) {
		repl.Run(ctx, svc, bufio.NewReader(in), out)
	})
	if err := cli.NewApp(svc, interactive).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
