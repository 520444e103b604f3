// Package photocache decides which of a user's photos to keep cached and
// maintains that cache.
//
// Selection is a 0/1 knapsack over photo size: each photo is worth
// 1/secondsSinceCreation, so recent photos are preferred, and the total size
// must fit a fixed capacity. Select is pure and safe for concurrent use.
//
// A Cache is a string-keyed store of serialized photos. It is never updated
// incrementally: every Refresh clears it and writes the new selection in one
// step. MemoryCache keeps entries in process; SQLiteCache persists them with
// gorm.
package photocache
