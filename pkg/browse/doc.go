// Package browse composes the classifier and the layout engine into view
// models for the dashboard, instance list, register list and register
// detail screens.
//
// A Browser is built once per loaded dataset and is read-only afterwards.
// Render maps a nav.State to the page a front-end draws:
//
//	b := browse.New(ds, classify.DefaultCategories())
//	page, err := b.Render(nav.Detail("GPIO", "GPIO1", "DR"))
//
// Unknown names yield errors wrapping ErrNotFound. Malformed registers yield
// errors wrapping a *layout.LayoutError.
package browse
