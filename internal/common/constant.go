package common

// SessionStorageKey is the single storage slot holding the serialized
// session record. Consumers must not treat any other slot as authoritative.
const SessionStorageKey = "petmanager_user"
