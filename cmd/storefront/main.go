package main

import (
	"github.com/su-perfume/storefront/config"
	"github.com/su-perfume/storefront/internal/app"
	"github.com/su-perfume/storefront/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	storefront.Close()
}
