package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// maxChannelKey bounds the channel part of a storage key; longer or unsafe
// channel names are replaced by a short hash.
const maxChannelKey = 64

// ChannelToken returns a storage-safe form of channel: "n:" + the name itself
// when it is short and free of separators, otherwise "h:" + the first 16 hex
// chars of its sha256. The prefixes keep literal names and hashes apart.
func ChannelToken(channel string) string {
	if channel != "" && len(channel) <= maxChannelKey && !strings.ContainsAny(channel, ": \t\r\n") {
		return "n:" + channel
	}
	sum := sha256.Sum256([]byte(channel))
	return "h:" + hex.EncodeToString(sum[:8])
}

// RecordKey returns the storage key of one captured record.
func RecordKey(ns, channel string, seq uint64) string {
	return RecordPrefix(ns, channel) + strconv.FormatUint(seq, 10)
}

// RecordPrefix returns the key prefix shared by every record of channel.
func RecordPrefix(ns, channel string) string {
	return "rec:" + ns + ":" + ChannelToken(channel) + ":"
}
