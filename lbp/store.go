package lbp

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// accountStore persists account records Borsh-encoded at their derived
// addresses, the same fixed-layout shape the records have on chain.
// Operations decode working copies and write back only after every check
// has passed, which is what makes each engine call atomic.
type accountStore struct {
	records map[solanago.PublicKey][]byte
}

func newAccountStore() *accountStore {
	return &accountStore{records: make(map[solanago.PublicKey][]byte)}
}

func (s *accountStore) has(address solanago.PublicKey) bool {
	_, ok := s.records[address]
	return ok
}

func (s *accountStore) get(address solanago.PublicKey, out interface{}) (bool, error) {
	data, ok := s.records[address]
	if !ok {
		return false, nil
	}
	if err := binary.NewBorshDecoder(data).Decode(out); err != nil {
		return false, fmt.Errorf("decode account %s: %w", address, err)
	}
	return true, nil
}

func (s *accountStore) set(address solanago.PublicKey, in interface{}) error {
	var buf bytes.Buffer
	if err := binary.NewBorshEncoder(&buf).Encode(in); err != nil {
		return fmt.Errorf("encode account %s: %w", address, err)
	}
	s.records[address] = buf.Bytes()
	return nil
}
