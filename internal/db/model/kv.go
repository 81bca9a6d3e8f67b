package model

const KVStoreCollection = "kv_store"

// KVDocument holds one serialized cache entry or cooldown, keyed by "cache:{address}"
// or "cooldown:{address}".
type KVDocument struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}
