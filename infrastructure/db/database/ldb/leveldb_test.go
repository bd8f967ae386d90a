package ldb

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func prepareDatabaseForTest(t *testing.T, testName string) *LevelDB {
	db, err := NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	t.Cleanup(func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	})
	return db
}

func TestLevelDBSanity(t *testing.T) {
	db := prepareDatabaseForTest(t, "TestLevelDBSanity")

	key := []byte("key")
	value := []byte("value")
	err := db.Put(key, value)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned unexpected error: %s", err)
	}

	exists, err := db.Has(key)
	if err != nil || !exists {
		t.Fatalf("TestLevelDBSanity: Has returned (%t, %v)", exists, err)
	}
	got, err := db.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned unexpected error: %s", err)
	}
	if !bytes.Equal(got, value) {
		t.Fatalf("TestLevelDBSanity: Get returned wrong value. Want: %s, got: %s", value, got)
	}

	err = db.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned unexpected error: %s", err)
	}
	got, err = db.Get(key)
	if err != nil || got != nil {
		t.Fatalf("TestLevelDBSanity: Get after Delete returned (%x, %v)", got, err)
	}
	exists, err = db.Has(key)
	if err != nil || exists {
		t.Fatalf("TestLevelDBSanity: Has after Delete returned (%t, %v)", exists, err)
	}
	if err := db.Delete(key); err != nil {
		t.Fatalf("TestLevelDBSanity: deleting a missing key returned %s", err)
	}
}

func TestLevelDBForEach(t *testing.T) {
	db := prepareDatabaseForTest(t, "TestLevelDBForEach")

	entries := map[string]string{"a1": "x", "a2": "y", "b1": "z"}
	for key, value := range entries {
		if err := db.Put([]byte(key), []byte(value)); err != nil {
			t.Fatalf("TestLevelDBForEach: Put: %s", err)
		}
	}

	var keys []string
	err := db.ForEach([]byte("a"), func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		if entries[string(key)] != string(value) {
			t.Errorf("TestLevelDBForEach: unexpected value %s for key %s", value, key)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("TestLevelDBForEach: ForEach: %s", err)
	}
	if len(keys) != 2 || keys[0] != "a1" || keys[1] != "a2" {
		t.Fatalf("TestLevelDBForEach: unexpected keys %v", keys)
	}

	stop := errors.New("stop")
	calls := 0
	err = db.ForEach(nil, func([]byte, []byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("TestLevelDBForEach: expected to stop after one call, got %d calls and %v", calls, err)
	}
}

func TestLevelDBReopen(t *testing.T) {
	path := t.TempDir()
	db, err := NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: NewLevelDB: %s", err)
	}
	if err := db.Put([]byte("key"), []byte("value")); err != nil {
		t.Fatalf("TestLevelDBReopen: Put: %s", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("TestLevelDBReopen: Close: %s", err)
	}

	db, err = NewLevelDB(path)
	if err != nil {
		t.Fatalf("TestLevelDBReopen: NewLevelDB: %s", err)
	}
	defer db.Close()
	value, err := db.Get([]byte("key"))
	if err != nil || string(value) != "value" {
		t.Fatalf("TestLevelDBReopen: Get returned (%s, %v)", value, err)
	}
}
