package event_bus

import "time"

const (
	BoardServedEvent   EventType = "board.served"
	GridsReloadedEvent EventType = "sheets.reloaded"
)

// BoardServed is published after a board was built and sent to a visitor.
type BoardServed struct {
	Today      time.Time
	Retreats   int
	Activities int
	Birthdays  int
}

// GridsReloaded is published when the cached grids were dropped or warmed.
type GridsReloaded struct {
	Ranges []string
	Forced bool
}
