// Package session schedules control changes over time and renders them
// offline through a tone processor. Timelines can be built in Go or loaded
// from small Lua scripts.
package session
