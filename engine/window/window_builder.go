package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the requested initial window size. Non-positive values keep the default.
//
// Parameters:
//   - width, height: initial size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits replaces DefaultSizeLimits.
func WithSizeLimits(limits SizeLimits) WindowBuilderOption {
	return func(w *engineWindow) {
		w.limits = limits
	}
}

// WithMaxSurfaceDimension caps the surface size reported through Width, Height and the resize
// callback. Defaults to DefaultMaxSurfaceDimension.
//
// Parameters:
//   - maxDim: the largest allowed width or height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSurfaceDimension(maxDim int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxSurfaceDimension = maxDim
	}
}
