// Package view shows rendered diagrams in a desktop window.
package view

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// Viewer displays a rendered diagram image.
type Viewer interface {
	// Show presents the image under the given window title and returns
	// when the presentation is over.
	Show(title string, img image.Image) error
}

// Window presents images in a desktop window. Show blocks until the window
// is closed and must run on the main goroutine, which the desktop drivers
// require for their event loop.
type Window struct{}

var _ Viewer = Window{}

// Show opens a window sized to the image and runs the event loop.
func (Window) Show(title string, img image.Image) error {
	a := app.NewWithID("com.karelplanken.pourbaix")
	w := a.NewWindow(title)

	pic := canvas.NewImageFromImage(img)
	pic.FillMode = canvas.ImageFillContain

	bounds := img.Bounds()
	w.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	w.SetContent(pic)
	w.ShowAndRun()
	return nil
}

// Nop discards every image. Non-interactive runs use it so that rendering
// never touches a display.
type Nop struct{}

var _ Viewer = Nop{}

// Show does nothing.
func (Nop) Show(string, image.Image) error {
	return nil
}
