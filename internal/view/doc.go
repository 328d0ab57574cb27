// Package view implements the deleted tasks page. Each browser session owns a
// Screen holding what the page shows; DeletedTasksView updates Screens from
// the tasks backend and Renderer turns them into HTML.
package view
