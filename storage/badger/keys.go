package badger

import (
	"fmt"

	"github.com/poiesic/lingclip/core"
)

// Key prefixes for different data types
const (
	recordPrefix     = "col"
	systemPrefix     = "sys"
	structVersionKey = systemPrefix + ":structver"
)

// makeRecordKey generates a key for a record by collection and primary key.
func makeRecordKey(col core.Collection, key string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", recordPrefix, col, key))
}

// makeCollectionPrefix generates the prefix shared by every record in a
// collection.
func makeCollectionPrefix(col core.Collection) []byte {
	return []byte(fmt.Sprintf("%s:%s:", recordPrefix, col))
}

// makeCollectionMarkerKey generates the key that declares a collection's
// existence at structural setup time.
func makeCollectionMarkerKey(col core.Collection) []byte {
	return []byte(fmt.Sprintf("%s:col:%s", systemPrefix, col))
}
