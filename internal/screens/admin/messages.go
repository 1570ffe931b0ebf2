package admin

import "github.com/abhisek/careerlens/internal/admin"

type snapshotMsg struct {
	snap admin.Snapshot
}

// actionMsg reports a flag or delete that already refreshed the console.
type actionMsg struct {
	done string
	err  error
}

type retrainMsg struct {
	err error
}

// Dialog ids.
const (
	dialogFlag    = "flag"
	dialogDelete  = "delete"
	dialogRetrain = "retrain"
)
