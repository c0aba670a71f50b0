package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"

	"github.com/AbdelkaderCE/Oker/internal/cache"
	"github.com/AbdelkaderCE/Oker/oker"
)

func sourceKey(src []byte) []byte {
	sum := sha256.Sum256(src)
	return sum[:]
}

func loadCached(path string, src []byte, verbose bool) ([]oker.Instruction, bool, error) {
	c, err := cache.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer c.Close()

	blob, ok, err := c.Get(sourceKey(src))
	if err != nil || !ok {
		return nil, false, err
	}
	announce(verbose, "bytecode cache hit")

	var instrs []oker.Instruction
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&instrs); err != nil {
		return nil, false, fmt.Errorf("decode cached bytecode: %w", err)
	}
	return instrs, true, nil
}

func storeCached(path string, src []byte, instrs []oker.Instruction) error {
	c, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(instrs); err != nil {
		return fmt.Errorf("encode bytecode: %w", err)
	}
	return c.Put(sourceKey(src), buf.Bytes())
}
