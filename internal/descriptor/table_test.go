package descriptor

import (
	"testing"

	"github.com/tuttlem/ares/internal/device"
)

func TestTableGetSetClear(t *testing.T) {
	var tbl Table
	con := device.NewConsole()

	if _, ok := tbl.Get(0); ok {
		t.Fatal("fresh table should have empty slots")
	}

	tbl.Set(1, con)
	d, ok := tbl.Get(1)
	if !ok || d != con {
		t.Fatal("Set/Get round trip failed")
	}

	tbl.Clear(1)
	if _, ok := tbl.Get(1); ok {
		t.Fatal("Clear did not empty the slot")
	}
}

func TestTableOutOfRange(t *testing.T) {
	var tbl Table
	con := device.NewConsole()

	tbl.Set(Size, con) // no-op, must not panic
	if _, ok := tbl.Get(Size); ok {
		t.Fatal("out-of-range slot should never be populated")
	}
	if _, ok := tbl.Get(-1); ok {
		t.Fatal("negative fd must report not-ok")
	}
}
