package sites

import (
	"encoding/json"
	"fmt"
)

func Encode(doc any) ([]byte, error) {
	bs, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingSite, err)
	}

	return bs, nil
}

func Decode(bs []byte) (any, error) {
	var doc any

	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodingSite, err)
	}

	return doc, nil
}
