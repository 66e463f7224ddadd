// Package renderer draws buffers onto a backend surface. The View paints
// visual rows through a layout cache and layers the active-scope tint and
// selection highlight over the text; Theme collects the colors involved.
package renderer
