package app

import "time"

// Clock supplies the timestamps product ids are derived from.
type Clock func() time.Time
