// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.

package core

import "testing"

func TestKeyImageRegistryRecordAndSeen(t *testing.T) {
	reg := NewKeyImageRegistry(NewMemoryKeyValueStore())
	var image [32]byte
	image[0] = 0x42

	if reg.Seen(image) {
		t.Fatal("an unrecorded image must not be seen")
	}

	ok, err := reg.Record(image)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !ok {
		t.Fatal("first Record of a fresh image must succeed")
	}
	if !reg.Seen(image) {
		t.Fatal("a recorded image must be seen")
	}

	ok, err = reg.Record(image)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if ok {
		t.Fatal("a second Record of the same image must fail")
	}
}

func TestKeyImageRegistryWithoutStore(t *testing.T) {
	reg := NewKeyImageRegistry(nil)
	var image [32]byte
	image[1] = 0x01

	ok, err := reg.Record(image)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !ok {
		t.Fatal("Record with a nil store must still work in-memory")
	}
	if !reg.Seen(image) {
		t.Fatal("nil-store registry must still remember recorded images")
	}
}

func TestMemoryKeyValueStorePutHasDelete(t *testing.T) {
	store := NewMemoryKeyValueStore()
	key := []byte("zkp-ki-test")

	has, err := store.Has(key)
	if err != nil || has {
		t.Fatal("fresh store must not have an unwritten key")
	}
	if err := store.Put(key, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	has, err = store.Has(key)
	if err != nil || !has {
		t.Fatal("store must have a key after Put")
	}
	if err := store.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	has, err = store.Has(key)
	if err != nil || has {
		t.Fatal("store must not have a key after Delete")
	}
}

func TestDistinctKeyImagesIndependentlyTracked(t *testing.T) {
	reg := NewKeyImageRegistry(NewMemoryKeyValueStore())
	var a, b [32]byte
	a[0] = 1
	b[0] = 2

	if ok, _ := reg.Record(a); !ok {
		t.Fatal("recording a must succeed")
	}
	if ok, _ := reg.Record(b); !ok {
		t.Fatal("recording a distinct image b must succeed independently of a")
	}
}
