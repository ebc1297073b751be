package storage

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boltSlotsBucket = "slots"

type BoltSlot struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: opening bolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists([]byte(boltSlotsBucket))
		return berr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: cant init bucket: %w", err)
	}
	return &BoltSlot{db: db}, nil
}

func (s *BoltSlot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltSlot) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(boltSlotsBucket))
		if b == nil {
			return errors.New("storage: bolt bucket missing")
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoValue
		}
		// v is only valid inside the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltSlot) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(boltSlotsBucket))
		if b == nil {
			return errors.New("storage: bolt bucket missing")
		}
		return b.Put([]byte(key), value)
	})
}
