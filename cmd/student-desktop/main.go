// main runs the Student Management form as a desktop window.
//
// The window hosts a single component whose list lives in memory for as
// long as the window is open.
//
//	go run ./cmd/student-desktop
//
// ENV selects the log format the same way the web server's config does
// ("dev", "staging", "prod"); it defaults to "dev".
package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/hudairyounas/student-app/internal/component"
	"github.com/hudairyounas/student-app/internal/desktop"
	"github.com/hudairyounas/student-app/internal/logger"
	"github.com/hudairyounas/student-app/internal/storage/memory"
	"github.com/hudairyounas/student-app/internal/validation"
	"github.com/hudairyounas/student-app/internal/view"
)

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}
	log := logger.Setup(env)
	slog.SetDefault(log)

	comp := component.New("desktop", memory.New(), validation.New(), log)
	defer comp.Close()

	a := app.New()
	win := a.NewWindow(view.Title)
	desktop.New(win, comp)
	win.Resize(fyne.NewSize(900, 700))

	log.Info("window opened")
	win.ShowAndRun()
	log.Info("window closed")
}
