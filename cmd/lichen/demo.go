package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lichen-browser/lichen"
	"github.com/lichen-browser/lichen/content"
)

// demoScript chains animation frames, alternating the banner background
// and periodically reading laid-out width back (a forced layout when a
// reflow is pending).
const demoScript = `
var frames = 0;
var banner = getById("banner");
function tick() {
	frames = frames + 1;
	banner.setStyle("background-color", frames % 2 === 0 ? "aliceblue" : "honeydew");
	if (frames % 30 === 0) {
		console.log("frame", frames, "banner width", banner.getWidth(), "at", now(), "ms");
	}
	requestAnimationFrame(tick);
}
requestAnimationFrame(tick);
`

// demoPage builds the pre-styled content tree a parser would normally
// deliver.
func demoPage() *content.Node {
	banner := content.NewElement("div", map[string]string{
		"background-color": "aliceblue",
	})
	banner.SetAttribute("id", "banner")
	banner.Append(content.NewText("Lichen renders this page without a real window."))

	para := content.NewElement("p", map[string]string{"font-size": "16px"})
	para.Append(
		content.NewText("The quick brown fox jumps over the lazy dog, wrapping onto"),
		content.NewElement("b", nil).Append(content.NewText("as many lines")),
		content.NewText("as the zoom factor demands."),
	)

	form := content.NewElement("p", nil)
	form.Append(
		content.NewText("Type here:"),
		content.NewElement("input", nil),
	)

	body := content.NewElement("body", nil)
	body.Append(banner, para, form)
	return content.NewElement("html", nil).Append(body)
}

func runDemo(log *zap.Logger, cadence time.Duration, frames, zoom int) error {
	surface := lichen.NewRecordingSurface()
	browser, err := lichen.New(
		lichen.WithLogger(log),
		lichen.WithSurface(surface),
		lichen.WithFrameCadence(cadence),
	)
	if err != nil {
		return fmt.Errorf("build browser: %w", err)
	}

	browser.LoadContent(demoPage())
	for i := 0; i < zoom; i++ {
		browser.ZoomIn()
	}
	for i := 0; i > zoom; i-- {
		browser.ZoomOut()
	}
	browser.RunScript("demo.js", demoScript)

	// Exercise the compositor-only paths while script animates.
	browser.PostEvent(lichen.Scroll(48))
	browser.PostEvent(lichen.Click(600, 300))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- browser.Run(ctx) }()

	start := time.Now()
	deadline := time.After(time.Duration(frames)*cadence*4 + 2*time.Second)
	tick := time.NewTicker(cadence)
	defer tick.Stop()

wait:
	for {
		select {
		case <-tick.C:
			if surface.FrameCount() >= frames {
				break wait
			}
		case <-deadline:
			log.Warn("deadline reached before frame target",
				zap.Int("drawn", surface.FrameCount()),
				zap.Int("target", frames))
			break wait
		}
	}
	elapsed := time.Since(start)

	browser.Stop()
	if err := <-done; err != nil {
		return fmt.Errorf("engine loops: %w", err)
	}

	drawn := surface.FrameCount()
	log.Info("demo finished",
		zap.Int("frames_drawn", drawn),
		zap.Duration("elapsed", elapsed),
		zap.Duration("cadence", cadence),
	)
	if last, ok := surface.LastFrame(); ok {
		log.Info("final frame",
			zap.Int("display_commands", len(last.List.Commands)),
			zap.Uint64("generation", last.List.Generation),
			zap.Float64("document_height", last.List.Height),
			zap.Float64("scroll", last.Scroll),
		)
	}
	return nil
}
