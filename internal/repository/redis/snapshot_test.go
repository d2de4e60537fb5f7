package redis

import "testing"

func TestSnapshotKey(t *testing.T) {
	if got := snapshotKey("calradia"); got != "world:calradia:snapshot" {
		t.Errorf("snapshotKey = %q", got)
	}
}
