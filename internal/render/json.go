package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
)

// SnapshotExport is the JSON form of a store snapshot.
type SnapshotExport struct {
	ExportedAt string          `json:"exportedAt"`
	State      userstore.State `json:"state"`
	Visible    []userapi.User  `json:"visible"`
}

// JSON writes st as an indented SnapshotExport.
func JSON(w io.Writer, st userstore.State, now time.Time) error {
	out := SnapshotExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		State:      st,
		Visible:    st.Visible(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
