package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/glyphswarm/internal/completion"
	"github.com/decker502/glyphswarm/pkg/app"
	"github.com/decker502/glyphswarm/pkg/embedded"
	"github.com/decker502/glyphswarm/pkg/scenes"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	variantFlag = flag.String("variant", "", "Animation variant: intro or speech (default: last used)")
	tiersFlag   = flag.String("tiers", "", "Path to a tier table YAML (default: embedded data/tiers.yaml)")
	envFlag     = flag.String("env", ".env", "Env file with completion API settings (speech variant)")
	noStdinFlag = flag.Bool("no-stdin", false, "Do not read transcript lines from stdin (speech variant)")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:  *verboseFlag,
		Variant:  *variantFlag,
		TierFile: *tiersFlag,
		// 变体可能来自上次的设置，speech 来源在场景创建时才打开
		SpeechSources: speechSources,
	}

	glyphApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	settings := glyphApp.GetSettings().GetSettings()
	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	ebiten.SetWindowTitle("Glyph Swarm")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.Fullscreen)
	// 半透明背景依赖上一帧内容产生拖尾
	ebiten.SetScreenClearedEveryFrame(false)

	runErr := ebiten.RunGame(glyphApp)
	if err := glyphApp.Close(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// speechSources 返回 stdin 转写来源与 completion 客户端
func speechSources() (io.Reader, scenes.Completer) {
	var transcript io.Reader
	if !*noStdinFlag {
		transcript = os.Stdin
	}

	client, err := completion.NewClient(completion.ConfigFromEnv(*envFlag))
	switch {
	case errors.Is(err, completion.ErrNoAPIKey):
		log.Printf("%s not set, replies disabled", completion.APIKeyEnv)
		return transcript, nil
	case err != nil:
		log.Printf("completion client unavailable: %v", err)
		return transcript, nil
	}
	return transcript, client
}
