package reconcile

import "fmt"

// Result summarizes one sync pass.
type Result struct {
	Uploaded       int  // local workouts the remote accepted
	UploadFailed   int  // local workouts left unsynced
	Confirmed      int  // local workouts already on the remote, now marked synced
	Pulled         int  // remote-only workouts added locally
	Dropped        int  // synced workouts the remote no longer holds
	Deleted        int  // pending local deletes the remote acknowledged
	Updated        int  // pending local edits the remote accepted
	Changes        int  // local history entries actually changed
	SettingsPulled bool // remote settings replaced different local ones
	SettingsPushed bool // local settings were uploaded
}

// Mutations counts local and remote writes the pass performed.
func (r Result) Mutations() int {
	n := r.Changes + r.Uploaded + r.Deleted + r.Updated
	if r.SettingsPulled {
		n++
	}
	if r.SettingsPushed {
		n++
	}
	return n
}

func (r Result) String() string {
	return fmt.Sprintf("uploaded=%d failed=%d pulled=%d dropped=%d deleted=%d updated=%d confirmed=%d settings_pulled=%t settings_pushed=%t",
		r.Uploaded, r.UploadFailed, r.Pulled, r.Dropped, r.Deleted, r.Updated, r.Confirmed, r.SettingsPulled, r.SettingsPushed)
}
