package blockfiles

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

func TestOpenCreateFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("TestOpenCreateFailure: directory permissions are not enforced for root")
	}
	store := New(t.TempDir())
	blocksDir := filepath.Dir(store.SegmentPath(BlockKind, 0))
	if err := os.MkdirAll(blocksDir, 0700); err != nil {
		t.Fatalf("TestOpenCreateFailure: MkdirAll: %s", err)
	}
	if err := os.Chmod(blocksDir, 0500); err != nil {
		t.Fatalf("TestOpenCreateFailure: Chmod: %s", err)
	}
	defer os.Chmod(blocksDir, 0700)

	file, err := store.OpenBlockFile(externalapi.DiskPosition{SegmentIndex: 0, Offset: 0}, false)
	if !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("TestOpenCreateFailure: expected ErrCreateFailed, got %v", err)
	}
	if file != nil {
		t.Fatalf("TestOpenCreateFailure: expected no handle")
	}
	if errors.Is(err, ErrOpenFailed) || errors.Is(err, ErrSeekFailed) {
		t.Fatalf("TestOpenCreateFailure: error matches more than one failure: %v", err)
	}
}

func TestOpenSeekFailure(t *testing.T) {
	store := New(t.TempDir())
	path := store.SegmentPath(UndoKind, 0)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("TestOpenSeekFailure: MkdirAll: %s", err)
	}
	// Pipes can be opened read-write but not seeked.
	if err := syscall.Mkfifo(path, 0600); err != nil {
		t.Fatalf("TestOpenSeekFailure: Mkfifo: %s", err)
	}

	file, err := store.OpenUndoFile(externalapi.DiskPosition{SegmentIndex: 0, Offset: 16}, false)
	if !errors.Is(err, ErrSeekFailed) {
		t.Fatalf("TestOpenSeekFailure: expected ErrSeekFailed, got %v", err)
	}
	if file != nil {
		t.Fatalf("TestOpenSeekFailure: expected the handle to be closed and not returned")
	}
	if errors.Is(err, ErrOpenFailed) || errors.Is(err, ErrCreateFailed) {
		t.Fatalf("TestOpenSeekFailure: error matches more than one failure: %v", err)
	}
}
