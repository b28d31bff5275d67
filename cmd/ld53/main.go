package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

func main() {
	scenePath := flag.String("scene", "scenes/demo.yaml", "scene spec to load")
	watch := flag.Bool("watch", false, "reload the scene when its directory changes")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app, err := NewApp(logger, *scenePath, *watch)
	if err != nil {
		logger.Fatal("startup", zap.Error(err))
	}
	defer app.Close()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("ld53")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
