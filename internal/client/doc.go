// Package client talks to the tasks backend on behalf of the deleted-tasks
// view. It only knows the two endpoints the view needs: listing deleted tasks
// and restoring one of them.
package client
