package block

import "testing"

func TestTableAdd(t *testing.T) {
	tbl := make(Table)
	if err := tbl.Add(New(2, 0, 1, "PUSH1 0x00")); err != nil {
		t.Fatalf("cannot add block: %v", err)
	}
	if err := tbl.Add(New(2, 0, 1, "PUSH1 0x00")); err != nil {
		t.Errorf("identical block should be accepted, got %v", err)
	}
	if err := tbl.Add(New(2, 0, 1, "PUSH1 0x01")); err != (DuplicateBlockError{ID: 2}) {
		t.Errorf("conflicting instructions should be rejected, got %v", err)
	}
	if err := tbl.Add(New(0, 0, 0)); err != nil {
		t.Fatalf("cannot add block: %v", err)
	}
	if want, got := []ID{0, 2}, tbl.IDs(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("IDs() want %v, got %v", want, got)
	}
}

func TestBlockShared(t *testing.T) {
	b := New(1, 0, 0)
	b.Funcs.Add("transfer(address,uint256)")
	if b.Shared() {
		t.Errorf("block in one function should not be shared")
	}
	b.Funcs.Add("_fallback")
	if !b.Shared() {
		t.Errorf("block in two functions should be shared")
	}
	if !b.Leaf() {
		t.Errorf("block without successors should be a leaf")
	}
}
