package utils

// RevokedTokenPrefix is the prefix used for Redis keys of logged-out tokens.
const RevokedTokenPrefix = "revoked:"

// EventsCacheKey holds the cached, date-sorted event list.
const EventsCacheKey = "events:all"
