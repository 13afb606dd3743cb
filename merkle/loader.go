package merkle

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
)

// ParticipantsFromJSON extracts whitelist addresses from a JSON document.
// Accepts either a bare array of base58 strings or an object with an
// "addresses" array, which is the shape the tree generator tooling emits.
func ParticipantsFromJSON(data []byte) ([]solanago.PublicKey, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("whitelist document is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("addresses")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("whitelist document has no address array")
	}

	var participants []solanago.PublicKey
	var parseErr error
	list.ForEach(func(_, value gjson.Result) bool {
		key, err := solanago.PublicKeyFromBase58(value.String())
		if err != nil {
			parseErr = fmt.Errorf("invalid whitelist address %q: %w", value.String(), err)
			return false
		}
		participants = append(participants, key)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return participants, nil
}

// TreeFromJSON is a convenience wrapper combining ParticipantsFromJSON
// and NewTree.
func TreeFromJSON(data []byte) (*Tree, error) {
	participants, err := ParticipantsFromJSON(data)
	if err != nil {
		return nil, err
	}
	return NewTree(participants)
}
