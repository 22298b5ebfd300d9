package app

import "time"

// Clock supplies order timestamps; order ids are derived from it too.
type Clock func() time.Time
