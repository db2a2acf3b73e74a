package threadstore

import (
	"encoding/json"

	"github.com/go-faster/errors"
)

// encodeThread and decodeThread implement the "self-describing structured
// format, stable field names" persisted layout the spec requires: JSON,
// with ThreadData's json tags as the stable schema shared by every Store
// backend (SQLite and MySQL store the encoded bytes in a single column;
// MemoryStore round-trips through the same encoding to catch
// serialization regressions in unit tests).
func encodeThread(thread ThreadData) ([]byte, error) {
	raw, err := json.Marshal(thread)
	if err != nil {
		return nil, errors.Wrap(err, "threadstore: encode thread")
	}
	return raw, nil
}

func decodeThread(raw []byte) (ThreadData, error) {
	var thread ThreadData
	if err := json.Unmarshal(raw, &thread); err != nil {
		return ThreadData{}, errors.Wrap(err, "threadstore: decode thread")
	}
	return thread, nil
}
